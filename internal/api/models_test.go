package api_test

import (
	"testing"

	"github.com/phrazzld/gemini-proxy/internal/api"
	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestNewServiceInfo(t *testing.T) {
	t.Parallel()

	client := api.NewServiceInfo(config.ModeClient)
	server := api.NewServiceInfo(config.ModeServer)

	assert.Equal(t, "ok", client.Status)
	assert.Equal(t, prompt.VerifiedModels(), client.Models)
	assert.Len(t, client.AcceptedFormats, 2)
	assert.Equal(t, "your-gemini-api-key", client.Usage.Headers["X-API-Key"])
	assert.Equal(t, "your-shared-secret", server.Usage.Headers["X-API-Key"])
	assert.NotEqual(t, client.Description, server.Description)
}
