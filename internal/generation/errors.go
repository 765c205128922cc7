package generation

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse matches every response that failed schema validation
// or decoding.
var ErrMalformedResponse = errors.New("malformed response from generation service")

// UpstreamError reports that the generation service could not be reached or
// answered with a non-2xx status.
type UpstreamError struct {
	Kind       string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s generation failed: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s generation failed with status %d: %s", e.Kind, e.StatusCode, e.Message)
}

// HTTPStatus propagates upstream 4xx/5xx codes and maps transport failures
// to 502.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}

// MalformedError wraps the validation failure for a specific artifact kind.
type MalformedError struct {
	Kind string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s response from generation service: %v", e.Kind, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedError) HTTPStatus() int {
	return http.StatusBadGateway
}

func malformed(kind string, format string, args ...interface{}) error {
	return &MalformedError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
