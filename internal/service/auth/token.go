package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
)

// MinJWTSecretLength is the shortest HMAC secret accepted.
const MinJWTSecretLength = 32

// Claims are the verified claims of a shared-secret token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// TokenValidator verifies shared-secret tokens. Tokens are minted outside
// this service; only verification lives here.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// hmacTokenValidator verifies HS256-signed tokens.
type hmacTokenValidator struct {
	signingKey []byte
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration    // Allowed time difference for validation to handle clock drift
}

var _ TokenValidator = (*hmacTokenValidator)(nil)

// NewTokenValidator creates a validator for tokens signed with secret.
func NewTokenValidator(secret string) (TokenValidator, error) {
	return newTokenValidator(secret, time.Now)
}

func newTokenValidator(secret string, now func() time.Time) (*hmacTokenValidator, error) {
	if len(secret) < MinJWTSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinJWTSecretLength)
	}
	return &hmacTokenValidator{
		signingKey: []byte(secret),
		timeFunc:   now,
		clockSkew:  2 * time.Minute,
	}, nil
}

// ValidateToken checks signature, algorithm and time claims. Tokens without
// an expiry are rejected.
func (s *hmacTokenValidator) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("shared secret token rejected: expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("shared secret token rejected: not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("shared secret token rejected",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		log.Debug("shared secret token rejected: invalid claims")
		return nil, ErrInvalidToken
	}

	out := &Claims{Subject: claims.Subject, ID: claims.ID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug("shared secret token accepted",
		"subject", out.Subject,
		"token_id", out.ID,
		"expiry", out.ExpiresAt)

	return out, nil
}

// looksLikeJWT reports whether s has the three dot-separated segments of a
// compact JWS.
func looksLikeJWT(s string) bool {
	return strings.Count(s, ".") == 2 && strings.HasPrefix(s, "eyJ")
}
