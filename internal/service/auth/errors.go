package auth

import "errors"

// Shared-secret token errors. They are always reported to callers wrapped in
// a domain.ErrInvalidAPIKeyFormat request error.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid shared secret token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("shared secret token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("shared secret token not yet valid")

	// ErrSecretMismatch indicates the presented value matches no configured secret
	ErrSecretMismatch = errors.New("shared secret does not match")
)
