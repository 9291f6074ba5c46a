package prompt_test

import (
	"testing"

	"github.com/phrazzld/gemini-proxy/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name      string
		bodyModel string
		path      string
		want      string
	}{
		{name: "preview name is renamed", bodyModel: "gemini-2.5-flash", want: "gemini-1.5-flash"},
		{name: "unknown falls back", bodyModel: "unknown-model", want: "gemini-1.5-flash"},
		{
			name:      "path override wins",
			bodyModel: "gemini-1.5-pro",
			path:      "/v1/models/gemini-1.5-flash:generateContent",
			want:      "gemini-1.5-flash",
		},
		{name: "legacy gemini-pro", bodyModel: "gemini-pro", want: "gemini-1.5-flash"},
		{name: "verified passes", bodyModel: "gemini-1.5-flash-8b", want: "gemini-1.5-flash-8b"},
		{name: "models prefix stripped", bodyModel: "models/gemini-1.5-pro", want: "gemini-1.5-pro"},
		{name: "surrounding space", bodyModel: "  gemini-1.5-pro ", want: "gemini-1.5-pro"},
		{name: "empty uses default", want: "gemini-1.5-flash"},
		{name: "path without colon", path: "/v1/models/gemini-1.5-pro", want: "gemini-1.5-pro"},
		{name: "empty path segment ignored", bodyModel: "gemini-1.5-pro", path: "/v1/models/:generateContent", want: "gemini-1.5-pro"},
		{name: "path with unknown model", bodyModel: "gemini-1.5-pro", path: "/v1/models/foo:generateContent", want: "gemini-1.5-flash"},
		{name: "path without models segment", bodyModel: "gemini-1.5-pro", path: "/api/generate", want: "gemini-1.5-pro"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, prompt.ResolveModel(tc.bodyModel, tc.path, prompt.DefaultModel))
		})
	}
}

func TestModelFromPath(t *testing.T) {
	assert.Equal(t, "gemini-1.5-flash", prompt.ModelFromPath("/v1/models/gemini-1.5-flash:generateContent"))
	assert.Equal(t, "gemini-1.5-pro", prompt.ModelFromPath("/v1beta/models/gemini-1.5-pro:streamGenerateContent"))
	assert.Equal(t, "", prompt.ModelFromPath("/"))
	assert.Equal(t, "", prompt.ModelFromPath(""))
}

func TestCanonicalModel_AlwaysVerified(t *testing.T) {
	names := []string{"", "gemini-pro", "gemini-2.5-pro", "gemini-1.5-pro", "claude-3", "gemini-3-pro-preview"}
	for _, name := range names {
		assert.True(t, prompt.IsVerifiedModel(prompt.CanonicalModel(name)), name)
	}
}

func TestVerifiedModels(t *testing.T) {
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-1.5-flash-8b", "gemini-1.5-pro"}, prompt.VerifiedModels())
	assert.True(t, prompt.IsVerifiedModel(prompt.DefaultModel))
	assert.True(t, prompt.IsVerifiedModel(prompt.FallbackModel))
}
