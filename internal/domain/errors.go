package domain

import "errors"

// Error kinds. Every failure surfaced to a client wraps exactly one of these
// (or one of the upstream kinds in the generation package); anything else is
// treated as unexpected.
var (
	// ErrMalformedJSON is returned when the request body is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON body")

	// ErrMissingAPIKey is returned when no credential header is present.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidAPIKeyFormat is returned when a credential is present but fails
	// the length or placeholder checks, or does not match the shared secret.
	ErrInvalidAPIKeyFormat = errors.New("invalid API key format")

	// ErrMissingText is returned when no prompt text can be extracted from
	// any of the accepted request shapes.
	ErrMissingText = errors.New("missing prompt text")

	// ErrRequestTooLarge is returned when the body exceeds the configured limit.
	ErrRequestTooLarge = errors.New("request body too large")
)

// RequestError carries a human-readable detail alongside the error kind it
// belongs to. Error() returns only the detail so it can be shown to clients
// as-is; errors.Is matches against both the kind and the cause.
type RequestError struct {
	Kind   error
	Detail string
	Cause  error
}

// NewRequestError creates a RequestError of the given kind.
func NewRequestError(kind error, detail string, cause error) *RequestError {
	return &RequestError{
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "request error"
}

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
