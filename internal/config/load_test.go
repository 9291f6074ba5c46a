package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. Viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GPROXY_SERVER_PORT",
		"GPROXY_SERVER_LOG_LEVEL",
		"GPROXY_SERVER_MAX_BODY_BYTES",
		"GPROXY_SERVER_SHUTDOWN_TIMEOUT_SECONDS",
		"GPROXY_UPSTREAM_BASE_URL",
		"GPROXY_UPSTREAM_API_VERSION",
		"GPROXY_UPSTREAM_TIMEOUT_SECONDS",
		"GPROXY_UPSTREAM_BACKEND",
		"GPROXY_UPSTREAM_DEFAULT_MODEL",
		"GPROXY_AUTH_MODE",
		"GPROXY_AUTH_MIN_KEY_LENGTH",
		"GPROXY_AUTH_SERVER_API_KEY",
		"GPROXY_AUTH_SHARED_SECRET_HASH",
		"GPROXY_AUTH_JWT_SECRET",
	} {
		t.Setenv(name, "")
	}
}

// TestLoadDefaults verifies that every key falls back to its default when
// nothing is configured.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithEnvFile("")

	require.NoError(t, err, "Load() should succeed on defaults alone")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "v1", cfg.Upstream.APIVersion)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, BackendREST, cfg.Upstream.Backend)
	assert.Equal(t, "gemini-1.5-flash", cfg.Upstream.DefaultModel)
	assert.Equal(t, ModeClient, cfg.Auth.Mode)
	assert.Equal(t, 20, cfg.Auth.MinKeyLength)
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GPROXY_SERVER_PORT", "9090")
	t.Setenv("GPROXY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("GPROXY_SERVER_MAX_BODY_BYTES", "2048")
	t.Setenv("GPROXY_UPSTREAM_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("GPROXY_UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("GPROXY_UPSTREAM_BACKEND", "sdk")
	t.Setenv("GPROXY_AUTH_MIN_KEY_LENGTH", "10")

	cfg, err := LoadWithEnvFile("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 5, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, BackendSDK, cfg.Upstream.Backend)
	assert.Equal(t, 10, cfg.Auth.MinKeyLength)
}

func TestLoadServerMode(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		errText string
	}{
		{
			name: "jwt secret",
			env: map[string]string{
				"GPROXY_AUTH_MODE":           "server",
				"GPROXY_AUTH_SERVER_API_KEY": "AIzaSyServerSideKey0123456789",
				"GPROXY_AUTH_JWT_SECRET":     "thisisasecretkeythatis32charslong!!",
			},
		},
		{
			name: "bcrypt hash",
			env: map[string]string{
				"GPROXY_AUTH_MODE":               "server",
				"GPROXY_AUTH_SERVER_API_KEY":     "AIzaSyServerSideKey0123456789",
				"GPROXY_AUTH_SHARED_SECRET_HASH": "$2a$10$abcdefghijklmnopqrstuuN6xO4Yh0dQ2n8hS0ZfJ5F2rQ0fUuJ2",
			},
		},
		{
			name: "missing server key",
			env: map[string]string{
				"GPROXY_AUTH_MODE":       "server",
				"GPROXY_AUTH_JWT_SECRET": "thisisasecretkeythatis32charslong!!",
			},
			errText: "ServerAPIKey",
		},
		{
			name: "no shared secret",
			env: map[string]string{
				"GPROXY_AUTH_MODE":           "server",
				"GPROXY_AUTH_SERVER_API_KEY": "AIzaSyServerSideKey0123456789",
			},
			wantErr: ErrNoSharedSecret,
		},
		{
			name: "short jwt secret",
			env: map[string]string{
				"GPROXY_AUTH_MODE":           "server",
				"GPROXY_AUTH_SERVER_API_KEY": "AIzaSyServerSideKey0123456789",
				"GPROXY_AUTH_JWT_SECRET":     "short",
			},
			errText: "JWTSecret",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithEnvFile("")

			switch {
			case tc.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, ModeServer, cfg.Auth.Mode)
			}
		})
	}
}

// TestLoadValidationErrors verifies that invalid values are rejected.
func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port zero", "GPROXY_SERVER_PORT", "0"},
		{"port too large", "GPROXY_SERVER_PORT", "70000"},
		{"unknown log level", "GPROXY_SERVER_LOG_LEVEL", "verbose"},
		{"unknown backend", "GPROXY_UPSTREAM_BACKEND", "grpc"},
		{"bad base url", "GPROXY_UPSTREAM_BASE_URL", "not a url"},
		{"unknown auth mode", "GPROXY_AUTH_MODE", "anonymous"},
		{"negative timeout", "GPROXY_UPSTREAM_TIMEOUT_SECONDS", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			cfg, err := LoadWithEnvFile("")

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadWithEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides existing variables, so this one must be
	// truly absent rather than blank.
	require.NoError(t, os.Unsetenv("GPROXY_UPSTREAM_DEFAULT_MODEL"))
	t.Cleanup(func() { _ = os.Unsetenv("GPROXY_UPSTREAM_DEFAULT_MODEL") })

	path := filepath.Join(t.TempDir(), "test.env")
	content := "GPROXY_UPSTREAM_DEFAULT_MODEL=gemini-1.5-pro\nGPROXY_SERVER_PORT=7070\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithEnvFile(path)

	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", cfg.Upstream.DefaultModel, "dotenv value should be picked up")
	assert.Equal(t, 8080, cfg.Server.Port, "blank process variable should keep dotenv from overriding it")
}

func TestLoadWithMissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithEnvFile(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
