package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
)

// KeySource decides which Gemini API key a request is forwarded with.
type KeySource interface {
	// Resolve inspects the request headers and returns the upstream key.
	// Failures wrap domain.ErrMissingAPIKey or domain.ErrInvalidAPIKeyFormat.
	Resolve(ctx context.Context, h http.Header) (string, error)
}

// NewKeySource builds the KeySource selected by cfg.Mode.
func NewKeySource(cfg config.AuthConfig) (KeySource, error) {
	switch cfg.Mode {
	case config.ModeClient, "":
		return NewClientKeySource(cfg.MinKeyLength), nil
	case config.ModeServer:
		var validator TokenValidator
		if cfg.JWTSecret != "" {
			v, err := NewTokenValidator(cfg.JWTSecret)
			if err != nil {
				return nil, err
			}
			validator = v
		}
		return NewServerKeySource(cfg.ServerAPIKey, cfg.SharedSecretHash, NewBcryptVerifier(), validator)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// ClientKeySource forwards the caller's own key after validating it.
type ClientKeySource struct {
	minLength int
}

var _ KeySource = (*ClientKeySource)(nil)

// NewClientKeySource returns a ClientKeySource enforcing minLength.
func NewClientKeySource(minLength int) *ClientKeySource {
	if minLength <= 0 {
		minLength = DefaultMinKeyLength
	}
	return &ClientKeySource{minLength: minLength}
}

// Resolve implements KeySource.
func (s *ClientKeySource) Resolve(_ context.Context, h http.Header) (string, error) {
	key := ExtractAPIKey(h)
	if key == "" {
		return "", missingKeyError()
	}
	if err := ValidateAPIKey(key, s.minLength); err != nil {
		return "", err
	}
	return key, nil
}

// ServerKeySource substitutes a server-side key once the caller proves it
// knows the shared secret. The secret travels in the same headers a client
// key would.
type ServerKeySource struct {
	serverKey  string
	secretHash string
	verifier   SecretVerifier
	tokens     TokenValidator
}

var _ KeySource = (*ServerKeySource)(nil)

// NewServerKeySource returns a ServerKeySource. At least one of secretHash
// and tokens must be set.
func NewServerKeySource(
	serverKey, secretHash string,
	verifier SecretVerifier,
	tokens TokenValidator,
) (*ServerKeySource, error) {
	if serverKey == "" {
		return nil, errors.New("server api key must be set in server mode")
	}
	if secretHash == "" && tokens == nil {
		return nil, errors.New("server mode requires a shared secret hash or a jwt secret")
	}
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	return &ServerKeySource{
		serverKey:  serverKey,
		secretHash: secretHash,
		verifier:   verifier,
		tokens:     tokens,
	}, nil
}

// Resolve implements KeySource.
func (s *ServerKeySource) Resolve(ctx context.Context, h http.Header) (string, error) {
	presented := ExtractAPIKey(h)
	if presented == "" {
		return "", missingKeyError()
	}

	if s.tokens != nil && looksLikeJWT(presented) {
		if _, err := s.tokens.ValidateToken(ctx, presented); err != nil {
			return "", rejected(err)
		}
		return s.serverKey, nil
	}

	if s.secretHash != "" {
		if err := s.verifier.Compare(s.secretHash, presented); err != nil {
			logger.FromContext(ctx).Debug("shared secret rejected", "error", err)
			return "", rejected(ErrSecretMismatch)
		}
		return s.serverKey, nil
	}

	return "", rejected(ErrSecretMismatch)
}

func rejected(cause error) error {
	return domain.NewRequestError(
		domain.ErrInvalidAPIKeyFormat,
		fmt.Sprintf("Invalid API Key: %v", cause),
		cause,
	)
}
