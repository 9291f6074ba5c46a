package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

const (
	clientKey     = "client-key-0123456789abcdef"
	helloResponse = `{"candidates":[{"content":{"parts":[{"text":"Hi there"}]}}]}`
)

// fakeGemini answers every generateContent call with a fixed response and
// remembers the last request.
type fakeGemini struct {
	mu     sync.Mutex
	status int
	body   string
	path   string
	key    string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	f.path = r.URL.Path
	f.key = r.Header.Get("x-goog-api-key")
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeGemini) last() (path, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path, f.key
}

// testConfig mirrors the loader defaults, pointed at upstreamURL.
func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			MaxBodyBytes:           1 << 20,
			ShutdownTimeoutSeconds: 5,
		},
		Upstream: config.UpstreamConfig{
			BaseURL:        upstreamURL,
			APIVersion:     "v1",
			TimeoutSeconds: 5,
			Backend:        config.BackendREST,
			DefaultModel:   "gemini-1.5-flash",
		},
		Auth: config.AuthConfig{
			Mode:         config.ModeClient,
			MinKeyLength: 20,
		},
	}
}

// newTestApp builds an application against a fake upstream. mutate may adjust
// the configuration before the application is built.
func newTestApp(t *testing.T, mutate func(*config.Config)) (*application, *fakeGemini, *logger.TestLogBuffer) {
	t.Helper()

	up := &fakeGemini{status: http.StatusOK, body: helloResponse}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	if mutate != nil {
		mutate(cfg)
	}

	l, buf := logger.GetTestLogger(t)
	app, err := newApplication(cfg, l)
	require.NoError(t, err)
	return app, up, buf
}
