package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/gemini-proxy/internal/domain"
)

// Headers a caller may present its key in, in lookup order.
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderGoogAPIKey    = "x-goog-api-key"

	bearerPrefix = "Bearer "
)

// DefaultMinKeyLength is the shortest key accepted when nothing else is configured.
const DefaultMinKeyLength = 20

// placeholderKeys are values copied verbatim from documentation examples.
// Compared case-insensitively.
var placeholderKeys = map[string]struct{}{
	"your_token":          {},
	"your_api_key":        {},
	"your-gemini-api-key": {},
	"api_key":             {},
	"test":                {},
	"demo":                {},
	"example":             {},
	"placeholder":         {},
	"xxx":                 {},
	"null":                {},
	"undefined":           {},
}

const missingKeyMessage = "Missing or invalid API Key. Please provide API key in X-API-Key, Authorization, or x-goog-api-key header"

// ExtractAPIKey returns the caller's key from X-API-Key, then Authorization
// (without a leading "Bearer "), then x-goog-api-key. The first value that is
// non-empty after trimming wins. It returns "" when no header carries a key.
func ExtractAPIKey(h http.Header) string {
	if key := strings.TrimSpace(h.Get(HeaderAPIKey)); key != "" {
		return key
	}
	if auth := h.Get(HeaderAuthorization); auth != "" {
		if key := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(h.Get(HeaderGoogAPIKey))
}

// ValidateAPIKey rejects keys shorter than minLength and well-known
// placeholder values. The returned error wraps domain.ErrInvalidAPIKeyFormat.
func ValidateAPIKey(key string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinKeyLength
	}
	if len(key) < minLength {
		return domain.NewRequestError(
			domain.ErrInvalidAPIKeyFormat,
			fmt.Sprintf("Invalid API key format: key too short (minimum %d characters)", minLength),
			nil,
		)
	}
	if IsPlaceholderKey(key) {
		return domain.NewRequestError(
			domain.ErrInvalidAPIKeyFormat,
			"Invalid API key format: placeholder value",
			nil,
		)
	}
	return nil
}

// IsPlaceholderKey reports whether key is a known documentation placeholder.
func IsPlaceholderKey(key string) bool {
	_, ok := placeholderKeys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

func missingKeyError() error {
	return domain.NewRequestError(domain.ErrMissingAPIKey, missingKeyMessage, nil)
}
