package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches every *RequestFailedError via errors.Is.
	ErrRequestFailed = errors.New("request failed")
	// ErrInvalidBaseURL is returned by New when the configured url is unusable.
	ErrInvalidBaseURL = errors.New("invalid base url")

	errInvalidJSON = errors.New("response body is not valid JSON")
)

// RequestFailedError describes a failed call against one endpoint.
// StatusCode is zero when no response was received.
type RequestFailedError struct {
	Endpoint   string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s (status %d): %v", e.Endpoint, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: GET %s: %v", e.Endpoint, e.URL, e.Err)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }
