package surveyapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/credentials"
)

// Login checks the pair against the backend's login form and, on HTTP 200, stores it
// for Basic auth on later requests. Any other status is ErrLoginFailed and leaves
// the store untouched.
func (c *Client) Login(ctx context.Context, username, password string) error {
	const op = "login"
	creds := credentials.Credentials{Username: strings.TrimSpace(username), Password: password}
	if !creds.Valid() {
		return fmt.Errorf("%w: username and password are required", apperrors.ErrLoginFailed)
	}

	endpoint := strings.TrimRight(c.baseURL.String(), "/") + "/?login"
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidURL, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID(ctx))

	status, _, err := c.do(op, req)
	var respErr *apperrors.ResponseError
	switch {
	case errors.As(err, &respErr):
		return fmt.Errorf("%w: %w", apperrors.ErrLoginFailed, respErr)
	case err != nil:
		return err
	case status != http.StatusOK:
		return fmt.Errorf("%w: %w", apperrors.ErrLoginFailed,
			&apperrors.ResponseError{Op: op, StatusCode: status})
	}

	if err := c.store.Set(ctx, creds); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	c.logger.Info("Logged in", zap.String("username", creds.Username))
	return nil
}

// Logout forgets the stored credentials.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	c.logger.Info("Logged out")
	return nil
}

// IsAuthenticated reports whether a valid credential pair is stored.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := c.store.Get(ctx)
	return err == nil && ok
}

// Username returns the stored username, if any.
func (c *Client) Username(ctx context.Context) (string, bool) {
	creds, ok, err := c.store.Get(ctx)
	if err != nil || !ok {
		return "", false
	}
	return creds.Username, true
}
