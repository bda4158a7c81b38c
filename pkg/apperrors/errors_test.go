package apperrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseError_MatchesInvalidResponse(t *testing.T) {
	err := fmt.Errorf("list campuses: %w", &ResponseError{Op: "list campuses", StatusCode: 503})

	assert.True(t, errors.Is(err, ErrInvalidResponse))
	assert.False(t, errors.Is(err, ErrNoData))

	var respErr *ResponseError
	assert.True(t, errors.As(err, &respErr))
	assert.Equal(t, 503, respErr.StatusCode)
}

func TestDecodingError_Unwraps(t *testing.T) {
	var target []string
	jsonErr := json.Unmarshal([]byte(`{}`), &target)
	err := &DecodingError{Op: "list projects", Err: jsonErr}

	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
	assert.Contains(t, err.Error(), "list projects")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid response", err: &ResponseError{Op: "x", StatusCode: 500}, want: MsgTryAgainLater},
		{name: "no data", err: fmt.Errorf("wrap: %w", ErrNoData), want: MsgTryAgainLater},
		{name: "decoding", err: &DecodingError{Op: "x", Err: errors.New("bad")}, want: MsgUnexpectedData},
		{name: "invalid url", err: ErrInvalidURL, want: MsgBadRequest},
		{name: "login failed", err: fmt.Errorf("login: %w", ErrLoginFailed), want: MsgInvalidLogin},
		{name: "not authenticated", err: ErrNotAuthenticated, want: MsgSignInRequired},
		{name: "canceled", err: fmt.Errorf("get: %w", context.Canceled), want: MsgRequestCanceled},
		{name: "transport keeps description", err: errors.New("dial tcp: connection refused"), want: "dial tcp: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
