package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/generation"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/phrazzld/gemini-proxy/internal/redact"
	"google.golang.org/genai"
)

// SDKGenerator implements generation.Generator with the genai client library.
//
// The caller's key differs per request, so a genai.Client is built per call.
// All of them share the injected *http.Client and its connection pool.
type SDKGenerator struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	logger     *slog.Logger
}

var _ generation.Generator = (*SDKGenerator)(nil)

// sdkPayload splits a generateContent body into contents and the raw
// fields that become the SDK's GenerateContentConfig.
type sdkPayload struct {
	Contents         []*genai.Content           `json:"contents"`
	GenerationConfig map[string]json.RawMessage `json:"generationConfig,omitempty"`
}

// sdkRequestFields are the top-level body fields that map onto
// GenerateContentConfig. Anything else is rejected rather than dropped.
var sdkRequestFields = map[string]bool{
	"contents":          true,
	"generationConfig":  true,
	"systemInstruction": true,
	"safetySettings":    true,
	"tools":             true,
	"toolConfig":        true,
	"cachedContent":     true,
}

// sdkGenerationFields are the generationConfig fields GenerateContentConfig
// carries under the same JSON names.
var sdkGenerationFields = map[string]bool{
	"temperature":        true,
	"topP":               true,
	"topK":               true,
	"candidateCount":     true,
	"maxOutputTokens":    true,
	"stopSequences":      true,
	"responseLogprobs":   true,
	"logprobs":           true,
	"presencePenalty":    true,
	"frequencyPenalty":   true,
	"seed":               true,
	"responseMimeType":   true,
	"responseSchema":     true,
	"responseModalities": true,
	"mediaResolution":    true,
	"speechConfig":       true,
	"audioTimestamp":     true,
	"thinkingConfig":     true,
}

// NewSDKGenerator creates a genai-backed generator sharing httpClient.
func NewSDKGenerator(httpClient *http.Client, cfg config.UpstreamConfig, log *slog.Logger) (*SDKGenerator, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("%w: http client cannot be nil", generation.ErrInvalidConfig)
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.BaseURL == "" || cfg.APIVersion == "" {
		return nil, fmt.Errorf("%w: base url and api version are required", generation.ErrInvalidConfig)
	}

	return &SDKGenerator{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/",
		apiVersion: strings.Trim(cfg.APIVersion, "/"),
		logger:     log,
	}, nil
}

// Generate implements generation.Generator.
func (g *SDKGenerator) Generate(ctx context.Context, apiKey string, req *domain.ResolvedRequest) (string, error) {
	if req == nil || (req.PromptText == "" && !req.IsPassThrough()) {
		return "", ErrEmptyPrompt
	}
	if req.ModelID == "" {
		return "", ErrEmptyModel
	}

	log := logger.FromContextOrDefault(ctx, g.logger).With(
		slog.String("model", req.ModelID),
		slog.String("backend", config.BackendSDK),
	)

	contents, genCfg, err := sdkRequest(req)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.baseURL,
			APIVersion: g.apiVersion,
		},
	})
	if err != nil {
		return "", generation.NewRequestFailed(fmt.Errorf("creating genai client: %w", err))
	}

	resp, err := client.Models.GenerateContent(ctx, req.ModelID, contents, genCfg)
	if err != nil {
		log.WarnContext(ctx, "gemini sdk request failed", "error", redact.Error(err))
		return "", sdkError(err)
	}

	text, err := firstCandidateText(resp)
	if err != nil {
		return "", err
	}
	log.DebugContext(ctx, "gemini sdk response received", "text_length", len(text))
	return text, nil
}

// sdkRequest converts a resolved request into genai arguments.
func sdkRequest(req *domain.ResolvedRequest) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	if !req.IsPassThrough() {
		return []*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.PromptText}},
		}}, nil, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(req.UpstreamPayload, &top); err != nil {
		return nil, nil, invalidSDKPayload(err)
	}
	var payload sdkPayload
	if err := json.Unmarshal(req.UpstreamPayload, &payload); err != nil {
		return nil, nil, invalidSDKPayload(err)
	}

	fields := make(map[string]json.RawMessage, len(top)+len(payload.GenerationConfig))
	for key, raw := range top {
		if !sdkRequestFields[key] {
			return nil, nil, unsupportedSDKField(key)
		}
		if key != "contents" && key != "generationConfig" {
			fields[key] = raw
		}
	}
	for key, raw := range payload.GenerationConfig {
		if !sdkGenerationFields[key] {
			return nil, nil, unsupportedSDKField("generationConfig." + key)
		}
		fields[key] = raw
	}
	if len(fields) == 0 {
		return payload.Contents, nil, nil
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, nil, invalidSDKPayload(err)
	}
	genCfg := &genai.GenerateContentConfig{}
	if err := json.Unmarshal(merged, genCfg); err != nil {
		return nil, nil, invalidSDKPayload(err)
	}
	return payload.Contents, genCfg, nil
}

func invalidSDKPayload(err error) error {
	return domain.NewRequestError(
		domain.ErrMalformedJSON,
		fmt.Sprintf("Invalid Gemini payload: %v", err),
		err,
	)
}

func unsupportedSDKField(field string) error {
	return domain.NewRequestError(
		domain.ErrMalformedJSON,
		fmt.Sprintf("Invalid Gemini payload: field %q is not supported by the sdk backend", field),
		nil,
	)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.NewEmptyResult(generation.ErrNoCandidates)
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 ||
		!isTextPart(cand.Content.Parts[0]) {
		return "", generation.NewEmptyResult(generation.ErrNoContent)
	}
	return cand.Content.Parts[0].Text, nil
}

// isTextPart reports whether p carries text. Text has no presence marker in
// genai.Part, so an empty Text counts only when no other payload is set.
func isTextPart(p *genai.Part) bool {
	if p == nil {
		return false
	}
	if p.Text != "" {
		return true
	}
	return p.InlineData == nil && p.FileData == nil && p.FunctionCall == nil &&
		p.FunctionResponse == nil && p.ExecutableCode == nil && p.CodeExecutionResult == nil &&
		p.VideoMetadata == nil
}

// sdkError keeps the upstream status when the SDK reports one.
func sdkError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &generation.UpstreamError{
			Kind:       generation.ErrUpstreamRequestFailed,
			StatusCode: apiErr.Code,
			Body:       truncate(apiErr.Message, maxErrorBodyChars),
			Err:        err,
		}
	}
	return generation.NewRequestFailed(err)
}
