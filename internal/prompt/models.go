package prompt

import (
	"maps"
	"slices"
	"strings"
)

const (
	// DefaultModel is used when neither the body nor the path names a model.
	DefaultModel = "gemini-1.5-flash"

	// FallbackModel replaces any model that is not on the verified list.
	FallbackModel = "gemini-1.5-flash"

	modelsPathMarker = "/models/"
)

// verifiedModels lists model IDs known to be served by the v1 endpoint.
var verifiedModels = map[string]struct{}{
	"gemini-1.5-flash":    {},
	"gemini-1.5-flash-8b": {},
	"gemini-1.5-pro":      {},
}

// modelRenames maps legacy, preview and alias names onto a verified model.
var modelRenames = map[string]string{
	"gemini-pro":              "gemini-1.5-flash",
	"gemini-pro-vision":       "gemini-1.5-flash",
	"gemini-1.0-pro":          "gemini-1.5-flash",
	"gemini-1.0-pro-latest":   "gemini-1.5-flash",
	"gemini-1.5-flash-latest": "gemini-1.5-flash",
	"gemini-1.5-flash-001":    "gemini-1.5-flash",
	"gemini-1.5-flash-002":    "gemini-1.5-flash",
	"gemini-1.5-pro-latest":   "gemini-1.5-pro",
	"gemini-1.5-pro-001":      "gemini-1.5-pro",
	"gemini-1.5-pro-002":      "gemini-1.5-pro",
	"gemini-2.0-flash":        "gemini-1.5-flash",
	"gemini-2.0-flash-exp":    "gemini-1.5-flash",
	"gemini-2.0-flash-lite":   "gemini-1.5-flash-8b",
	"gemini-2.5-flash":        "gemini-1.5-flash",
	"gemini-2.5-flash-lite":   "gemini-1.5-flash-8b",
	"gemini-2.5-pro":          "gemini-1.5-pro",
	"gemini-exp-1206":         "gemini-1.5-pro",
}

// ResolveModel picks the upstream model for a request.
//
// The default is overridden by bodyModel when non-empty, and then by the
// segment between "/models/" and the next ':' in path, so a path override
// wins over the body. The chosen name is passed through the rename table and
// must end up on the verified list; otherwise FallbackModel is returned.
func ResolveModel(bodyModel, path, defaultModel string) string {
	model := defaultModel
	if m := strings.TrimSpace(bodyModel); m != "" {
		model = m
	}
	if m := ModelFromPath(path); m != "" {
		model = m
	}
	return CanonicalModel(model)
}

// ModelFromPath extracts the model segment from a Gemini-style request path
// such as /v1/models/gemini-1.5-flash:generateContent. It returns "" when the
// path has no /models/ segment.
func ModelFromPath(path string) string {
	i := strings.Index(path, modelsPathMarker)
	if i < 0 {
		return ""
	}
	rest := path[i+len(modelsPathMarker):]
	if j := strings.IndexByte(rest, ':'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// CanonicalModel maps a requested model name onto a verified model.
func CanonicalModel(model string) string {
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if renamed, ok := modelRenames[model]; ok {
		return renamed
	}
	if IsVerifiedModel(model) {
		return model
	}
	return FallbackModel
}

// IsVerifiedModel reports whether model is on the verified list.
func IsVerifiedModel(model string) bool {
	_, ok := verifiedModels[model]
	return ok
}

// VerifiedModels returns the verified model IDs in a stable order.
func VerifiedModels() []string {
	return slices.Sorted(maps.Keys(verifiedModels))
}
