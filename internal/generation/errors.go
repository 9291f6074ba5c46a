package generation

import (
	"errors"
	"fmt"
)

// Upstream failure kinds. Every error a Generator returns for an upstream
// problem matches exactly one of the first two via errors.Is.
var (
	// ErrUpstreamRequestFailed covers transport failures, timeouts, non-2xx
	// responses and bodies that are not valid JSON.
	ErrUpstreamRequestFailed = errors.New("gemini api request failed")

	// ErrUpstreamEmptyResult is returned when the upstream answered but the
	// first candidate carries no text.
	ErrUpstreamEmptyResult = errors.New("no content generated by gemini api")

	// ErrInvalidConfig is returned when a generator is constructed with an
	// unusable configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Causes attached to ErrUpstreamEmptyResult.
var (
	ErrNoCandidates = errors.New("no candidates returned")
	ErrNoContent    = errors.New("no content generated")
)

// UpstreamError describes a failed upstream call.
type UpstreamError struct {
	// Kind is ErrUpstreamRequestFailed or ErrUpstreamEmptyResult.
	Kind error
	// StatusCode is the upstream HTTP status, or 0 when none was received.
	StatusCode int
	// Body is a bounded excerpt of the upstream response body.
	Body string
	Err  error
}

// NewRequestFailed wraps err as an ErrUpstreamRequestFailed.
func NewRequestFailed(err error) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamRequestFailed, Err: err}
}

// NewEmptyResult wraps cause as an ErrUpstreamEmptyResult.
func NewEmptyResult(cause error) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamEmptyResult, Err: cause}
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%v: status %d: %s", e.Kind, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%v: status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *UpstreamError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
