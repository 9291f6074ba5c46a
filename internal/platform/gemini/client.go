package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/generation"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/phrazzld/gemini-proxy/internal/redact"
	"github.com/tidwall/sjson"
)

const (
	// maxResponseBytes bounds how much of an upstream body is read.
	maxResponseBytes = 10 << 20

	// maxErrorBodyChars bounds the upstream body quoted in an error.
	maxErrorBodyChars = 500

	userTurnTemplate = `{"contents":[{"role":"user","parts":[{"text":""}]}]}`
)

// Client calls the Gemini REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	logger     *slog.Logger
}

var _ generation.Generator = (*Client)(nil)

// NewClient creates a REST client sharing httpClient.
func NewClient(httpClient *http.Client, cfg config.UpstreamConfig, log *slog.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("%w: http client cannot be nil", generation.ErrInvalidConfig)
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, fmt.Errorf("%w: invalid base url %q", generation.ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.APIVersion == "" {
		return nil, fmt.Errorf("%w: api version cannot be empty", generation.ErrInvalidConfig)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		apiVersion: strings.Trim(cfg.APIVersion, "/"),
		logger:     log,
	}, nil
}

// Endpoint returns the generateContent URL for model.
func (c *Client) Endpoint(model string) string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, url.PathEscape(model))
}

// Generate implements generation.Generator.
func (c *Client) Generate(ctx context.Context, apiKey string, req *domain.ResolvedRequest) (string, error) {
	if req == nil || (req.PromptText == "" && !req.IsPassThrough()) {
		return "", ErrEmptyPrompt
	}
	if req.ModelID == "" {
		return "", ErrEmptyModel
	}

	body := []byte(req.UpstreamPayload)
	if !req.IsPassThrough() {
		var err error
		body, err = BuildRequestBody(req.PromptText)
		if err != nil {
			return "", fmt.Errorf("failed to build upstream body: %w", err)
		}
	}

	log := logger.FromContextOrDefault(ctx, c.logger).With(
		slog.String("model", req.ModelID),
		slog.Bool("pass_through", req.IsPassThrough()),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(req.ModelID), bytes.NewReader(body))
	if err != nil {
		return "", generation.NewRequestFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WarnContext(ctx, "gemini request failed",
			"error", redact.Error(err),
			"duration_ms", time.Since(start).Milliseconds())
		return "", generation.NewRequestFailed(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", generation.NewRequestFailed(fmt.Errorf("reading response body: %w", err))
	}

	log.DebugContext(ctx, "gemini response received",
		"status_code", resp.StatusCode,
		"bytes", len(respBody),
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &generation.UpstreamError{
			Kind:       generation.ErrUpstreamRequestFailed,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), maxErrorBodyChars),
		}
	}

	return ExtractText(respBody)
}

// BuildRequestBody wraps text in a single user turn.
func BuildRequestBody(text string) ([]byte, error) {
	return sjson.SetBytes([]byte(userTurnTemplate), "contents.0.parts.0.text", text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
