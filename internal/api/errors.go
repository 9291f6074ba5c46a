package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/generation"
)

// Error categories sent in the "error" field of error responses.
const (
	CategoryInvalidJSON      = "Invalid JSON"
	CategoryInvalidAPIKey    = "Invalid API Key"
	CategoryMissingText      = "Missing Text"
	CategoryTooLarge         = "Request Too Large"
	CategoryUpstreamFailed   = "Upstream Request Failed"
	CategoryNoContent        = "No Content Generated"
	CategoryInternal         = "Internal Server Error"
	CategoryNotFound         = "Not Found"
	CategoryMethodNotAllowed = "Method Not Allowed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedJSON),
		errors.Is(err, domain.ErrMissingText):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrMissingAPIKey),
		errors.Is(err, domain.ErrInvalidAPIKeyFormat):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, generation.ErrUpstreamRequestFailed):
		return http.StatusBadGateway

	// Upstream answered without usable content, and anything unexpected.
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCategory returns the short category label for err.
func ErrorCategory(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedJSON):
		return CategoryInvalidJSON
	case errors.Is(err, domain.ErrMissingAPIKey),
		errors.Is(err, domain.ErrInvalidAPIKeyFormat):
		return CategoryInvalidAPIKey
	case errors.Is(err, domain.ErrMissingText):
		return CategoryMissingText
	case errors.Is(err, domain.ErrRequestTooLarge):
		return CategoryTooLarge
	case errors.Is(err, generation.ErrUpstreamRequestFailed):
		return CategoryUpstreamFailed
	case errors.Is(err, generation.ErrUpstreamEmptyResult):
		return CategoryNoContent
	default:
		return CategoryInternal
	}
}

// GetSafeErrorMessage returns the detail shown to clients. Request and
// upstream errors describe themselves. Anything else is reported as an
// internal server error carrying its text; responders redact credentials
// before the message is written.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}

	var upstreamErr *generation.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Error()
	}

	if ErrorCategory(err) != CategoryInternal {
		return err.Error()
	}
	return "Internal server error: " + err.Error()
}
