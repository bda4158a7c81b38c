// Package testhelpers provides shared fixtures for package tests: a fake survey
// backend served over httptest and an in-memory state database.
package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/evanterry/surveyor/pkg/models"
)

// BarrierPath is where the fake backend accepts barrier submissions.
const BarrierPath = "/evanterry/surveyors.nsf/createBarrier"

// RecordedRequest is a request as the fake backend saw it.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Query    url.Values
	Header   http.Header
	Body     []byte
}

// Response is a canned reply for one path.
type Response struct {
	Status int
	Body   string
}

// FakeBackend mimics the survey backend. List endpoints reply with canned
// responses keyed by path; login and barrier submission are implemented.
type FakeBackend struct {
	Server *httptest.Server

	// Accepted login. Requests to the barrier endpoint must carry it as Basic auth.
	Username string
	Password string

	// RequireAuth makes canned endpoints reply 401 without valid Basic auth.
	RequireAuth bool

	mu            sync.Mutex
	requests      []RecordedRequest
	responses     map[string]Response
	barriers      []models.Barrier
	barrierStatus int
}

// NewFakeBackend starts a fake backend that is shut down when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		Username:      "surveyor",
		Password:      "correct-horse",
		responses:     make(map[string]Response),
		barrierStatus: http.StatusOK,
	}

	r := mux.NewRouter()
	r.Use(f.record)
	r.HandleFunc("/", f.handleLogin).Methods(http.MethodPost)
	r.HandleFunc(BarrierPath, f.handleBarrier).Methods(http.MethodPost)
	r.PathPrefix("/").HandlerFunc(f.handleCanned).Methods(http.MethodGet)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL clients should use.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// Respond sets the reply for GET requests to path.
func (f *FakeBackend) Respond(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = Response{Status: status, Body: body}
}

// RespondJSON replies 200 with v encoded as JSON.
func (f *FakeBackend) RespondJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode fake response: %v", err)
	}
	f.Respond(path, http.StatusOK, string(data))
}

// SetBarrierStatus changes the status returned for barrier submissions.
func (f *FakeBackend) SetBarrierStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.barrierStatus = status
}

// Requests returns a copy of all recorded requests.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request, or a zero value.
func (f *FakeBackend) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// Barriers returns the barriers accepted so far.
func (f *FakeBackend) Barriers() []models.Barrier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Barrier(nil), f.barriers...)
}

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Query:    r.URL.Query(),
			Header:   r.Header.Clone(),
			Body:     body,
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) authorized(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	return ok && user == f.Username && pass == f.Password
}

func (f *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("login") {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("username") != f.Username || r.PostForm.Get("password") != f.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html>welcome</html>"))
}

func (f *FakeBackend) handleBarrier(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var b models.Barrier
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad barrier", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	status := f.barrierStatus
	if status >= 200 && status < 300 {
		f.barriers = append(f.barriers, b)
	}
	f.mu.Unlock()

	w.WriteHeader(status)
}

func (f *FakeBackend) handleCanned(w http.ResponseWriter, r *http.Request) {
	if f.RequireAuth && !f.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	f.mu.Lock()
	resp, ok := f.responses[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}
