// Package surveyapi is the client for the survey backend: project lookups, question
// lists and details, solutions, login and barrier submission.
package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/credentials"
	"github.com/evanterry/surveyor/pkg/logging"
)

const (
	// DefaultBaseURL is the production backend.
	DefaultBaseURL = "https://ada1.evanterry.com"
	// DefaultBarrierPath is where new barriers are posted.
	DefaultBarrierPath = "/evanterry/surveyors.nsf/createBarrier"
	// DefaultUserAgent is sent when no other agent is configured.
	DefaultUserAgent = "surveyor"

	// RequestIDHeader carries a per-request id for correlating logs with the backend.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the survey backend. Each method sends exactly one request and
// never retries. Without WithTimeout, requests are bounded only by their context.
type Client struct {
	baseURL     *url.URL
	barrierPath string
	userAgent   string
	httpClient  *http.Client
	store       credentials.Store
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithBarrierPath overrides the barrier submission path.
func WithBarrierPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.barrierPath = "/" + strings.TrimLeft(p, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for baseURL. Credentials for Basic auth are read from store
// on every request; a nil store means an empty in-memory one.
func NewClient(baseURL string, store credentials.Store, logger *zap.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL: %v", apperrors.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q needs a scheme and host", apperrors.ErrInvalidURL, baseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""

	if store == nil {
		store = credentials.NewMemoryStore()
	}

	c := &Client{
		baseURL:     u,
		barrierPath: DefaultBarrierPath,
		userAgent:   DefaultUserAgent,
		httpClient:  &http.Client{},
		store:       store,
		logger:      logger.Named("surveyapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type requestIDKey struct{}

// WithRequestID makes requests sent with ctx carry id instead of a fresh one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func requestID(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}

type param struct {
	name  string
	value string
}

// buildURL joins the base URL, path and query parameters. Each value is escaped on its
// own and the parameters keep their given order. Blank values are rejected.
func (c *Client) buildURL(op, path string, params ...param) (string, error) {
	var b strings.Builder
	b.WriteString(strings.TrimRight(c.baseURL.String(), "/"))
	b.WriteString(path)

	for i, p := range params {
		if strings.TrimSpace(p.value) == "" {
			return "", fmt.Errorf("%w: %s: %s is required", apperrors.ErrInvalidURL, op, p.name)
		}
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	raw := b.String()
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidURL, op, err)
	}
	return raw, nil
}

// newRequest builds a request with the standard headers and, when credentials are
// stored, Basic auth.
func (c *Client) newRequest(ctx context.Context, op, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidURL, op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID(ctx))

	creds, ok, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("Failed to read stored credentials, sending request without auth",
			zap.String("op", op),
			zap.String("error", logging.SanitizeError(err)))
	} else if ok {
		req.SetBasicAuth(creds.Username, creds.Password)
	}
	return req, nil
}

// do sends req and returns the body of a 2xx response. Transport errors keep their
// identity; other statuses become *apperrors.ResponseError.
func (c *Client) do(op string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	reqID := req.Header.Get(RequestIDHeader)

	c.logger.Debug("Sending request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", logging.SanitizeURL(req.URL.String())),
		zap.String("request_id", reqID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.String("error", logging.SanitizeError(err)))
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Backend returned error",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logging.SanitizeBody(body)))
		return resp.StatusCode, body, &apperrors.ResponseError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       logging.SanitizeBody(body),
		}
	}

	c.logger.Debug("Received response",
		zap.String("op", op),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return resp.StatusCode, body, nil
}

var jsonNull = []byte("null")

// getJSON performs a GET and decodes the body into out. An empty or null body is ErrNoData.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := c.newRequest(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	_, body, err := c.do(op, req)
	if err != nil {
		return err
	}
	// a bare null decodes to a nil slice or zero struct without error
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNoData)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode response",
			zap.String("op", op),
			zap.Error(err),
			zap.String("body", logging.SanitizeBody(body)))
		return &apperrors.DecodingError{Op: op, Err: err}
	}
	return nil
}

// getList fetches a JSON array endpoint.
func getList[T any](ctx context.Context, c *Client, op, endpoint string) ([]T, error) {
	var items []T
	if err := c.getJSON(ctx, op, endpoint, &items); err != nil {
		return nil, err
	}
	c.logger.Info("Fetched "+op, zap.Int("count", len(items)))
	return items, nil
}
