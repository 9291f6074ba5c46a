package main

import (
	"testing"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		l, _ := logger.GetTestLogger(t)
		_, err := newApplication(nil, l)
		assert.Error(t, err)
	})

	t.Run("client mode wires every component", func(t *testing.T) {
		t.Parallel()
		app, _, buf := newTestApp(t, nil)
		assert.NotNil(t, app.httpClient)
		assert.NotNil(t, app.keys)
		assert.NotNil(t, app.generator)
		assert.NotNil(t, app.service)
		assert.NotNil(t, app.handler)
		logger.AssertLogContains(t, buf, "Application initialized successfully")
	})

	t.Run("sdk backend", func(t *testing.T) {
		t.Parallel()
		app, _, _ := newTestApp(t, func(cfg *config.Config) {
			cfg.Upstream.Backend = config.BackendSDK
		})
		assert.NotNil(t, app.generator)
	})

	t.Run("server mode without secret", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("http://127.0.0.1:1")
		cfg.Auth.Mode = config.ModeServer
		cfg.Auth.ServerAPIKey = "server-side-gemini-key-0123456789"

		l, _ := logger.GetTestLogger(t)
		_, err := newApplication(cfg, l)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key source")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("http://127.0.0.1:1")
		cfg.Upstream.Backend = "grpc"

		l, _ := logger.GetTestLogger(t)
		_, err := newApplication(cfg, l)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generator")
	})
}
