package api

import (
	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/prompt"
)

// Version is reported by the info document.
const Version = "2.0.0"

// ServiceInfo is the document served on GET /.
type ServiceInfo struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Version         string            `json:"version"`
	Status          string            `json:"status"`
	Endpoints       map[string]string `json:"endpoints"`
	Usage           UsageInfo         `json:"usage"`
	Features        []string          `json:"features"`
	AcceptedFormats []string          `json:"accepted_formats"`
	Models          []string          `json:"models"`
}

// UsageInfo shows a minimal working request.
type UsageInfo struct {
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    map[string]string `json:"body"`
}

// NewServiceInfo describes the proxy for the given auth mode.
func NewServiceInfo(authMode string) ServiceInfo {
	description := "Reverse proxy for the Google Gemini API. Clients provide their own API key."
	keyFeature := "Client supplies its own Gemini API key; the server stores none"
	keyHeader := "your-gemini-api-key"
	if authMode == config.ModeServer {
		description = "Reverse proxy for the Google Gemini API. Clients present a shared secret."
		keyFeature = "Server-side Gemini API key, unlocked by a shared secret or signed token"
		keyHeader = "your-shared-secret"
	}

	return ServiceInfo{
		Name:        "Gemini Proxy API",
		Description: description,
		Version:     Version,
		Status:      "ok",
		Endpoints: map[string]string{
			"GET /":       "Get API information",
			"POST /":      "Generate content using Gemini",
			"GET /health": "Liveness check",

			"POST /{version}/models/{model}:generateContent": "Generate content with the model taken from the path",
		},
		Usage: UsageInfo{
			Method: "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
				"X-API-Key":    keyHeader,
			},
			Body: map[string]string{
				"text": "Your prompt here",
			},
		},
		Features: []string{
			keyFeature,
			"API key accepted in X-API-Key, Authorization or x-goog-api-key",
			"Full CORS support",
			"Base64 encoded responses",
			"Gemini-native request bodies forwarded unchanged",
		},
		AcceptedFormats: []string{
			`{"text": "message", "model": "optional model id"}`,
			`{"contents": [{"parts": [{"text": "message"}]}]}`,
		},
		Models: prompt.VerifiedModels(),
	}
}
