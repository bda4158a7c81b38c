package apperrors

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrInvalidResponse   = errors.New("invalid response")
	ErrNoData            = errors.New("no data")
	ErrNotFound          = errors.New("not found")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrLoginFailed       = errors.New("invalid credentials")
	ErrMissingQuestionID = errors.New("question has no id")
	ErrInvalidBarrier    = errors.New("invalid barrier")
	ErrWizardStep        = errors.New("survey setup step out of order")
)

// ResponseError reports a non-2xx status from the survey backend.
// It matches ErrInvalidResponse with errors.Is.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// DecodingError reports a response body that did not match the expected shape.
type DecodingError struct {
	Op  string
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// User-facing messages for failed backend calls.
const (
	MsgTryAgainLater   = "The server could not be reached. Please try again later."
	MsgUnexpectedData  = "The server returned data in an unexpected format."
	MsgBadRequest      = "The request could not be built from the selected values."
	MsgSignInRequired  = "Please sign in before continuing."
	MsgInvalidLogin    = "Invalid username or password."
	MsgRequestCanceled = "The request was canceled."
)

// UserMessage returns the text shown to a surveyor when an operation fails.
// Transport errors keep their own description.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var decErr *DecodingError
	switch {
	case errors.Is(err, context.Canceled):
		return MsgRequestCanceled
	case errors.Is(err, ErrLoginFailed):
		return MsgInvalidLogin
	case errors.Is(err, ErrNotAuthenticated):
		return MsgSignInRequired
	case errors.Is(err, ErrInvalidResponse), errors.Is(err, ErrNoData):
		return MsgTryAgainLater
	case errors.As(err, &decErr):
		return MsgUnexpectedData
	case errors.Is(err, ErrInvalidURL):
		return MsgBadRequest
	}
	return err.Error()
}
