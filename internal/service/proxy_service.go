package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/generation"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/phrazzld/gemini-proxy/internal/prompt"
	"github.com/phrazzld/gemini-proxy/internal/redact"
	"github.com/phrazzld/gemini-proxy/internal/service/auth"
)

// ProxyRequest is one inbound call as the service sees it.
type ProxyRequest struct {
	Body   []byte
	Path   string
	Header http.Header
}

// ProxyService forwards prompts to the upstream model.
type ProxyService interface {
	// Generate validates req, calls the upstream and returns the encoded
	// result. Errors wrap the domain and generation sentinels.
	Generate(ctx context.Context, req ProxyRequest) (*domain.GenerateResult, error)
}

type proxyServiceImpl struct {
	keys         auth.KeySource
	generator    generation.Generator
	defaultModel string
	logger       *slog.Logger
}

// NewProxyService creates a ProxyService.
// It returns an error if any of the required dependencies are nil.
func NewProxyService(
	keys auth.KeySource,
	generator generation.Generator,
	defaultModel string,
	logger *slog.Logger,
) (ProxyService, error) {
	if keys == nil {
		return nil, &ProxyServiceError{Operation: "create_service", Message: "keys cannot be nil"}
	}
	if generator == nil {
		return nil, &ProxyServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if defaultModel == "" {
		defaultModel = prompt.DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &proxyServiceImpl{
		keys:         keys,
		generator:    generator,
		defaultModel: defaultModel,
		logger:       logger.With("component", "proxy_service"),
	}, nil
}

// Generate implements ProxyService.
func (s *proxyServiceImpl) Generate(ctx context.Context, req ProxyRequest) (*domain.GenerateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := prompt.Parse(req.Body); err != nil {
		log.DebugContext(ctx, "rejected malformed body", "body_bytes", len(req.Body))
		return nil, err
	}

	apiKey, err := s.keys.Resolve(ctx, req.Header)
	if err != nil {
		log.DebugContext(ctx, "rejected api key", "error", redact.Error(err))
		return nil, err
	}

	resolved, err := prompt.Resolve(req.Body, req.Path, s.defaultModel)
	if err != nil {
		log.DebugContext(ctx, "rejected body without prompt text")
		return nil, err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, apiKey, resolved)
	if err != nil {
		return nil, err
	}

	result := domain.NewGenerateResult(text)
	log.InfoContext(ctx, "prompt proxied",
		"model", resolved.ModelID,
		"pass_through", resolved.IsPassThrough(),
		"prompt_length", len(resolved.PromptText),
		"original_length", result.OriginalLength,
		"upstream_ms", time.Since(start).Milliseconds())

	return &result, nil
}
