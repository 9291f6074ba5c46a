package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/phrazzld/gemini-proxy/internal/service/auth"
)

// MockKeySource implements auth.KeySource for testing
type MockKeySource struct {
	// ResolveFn allows test cases to mock the Resolve behavior
	ResolveFn func(ctx context.Context, h http.Header) (string, error)

	// Default response values
	Key string
	Err error

	mu    sync.Mutex
	calls int
}

var _ auth.KeySource = (*MockKeySource)(nil)

// Resolve implements auth.KeySource.
func (m *MockKeySource) Resolve(ctx context.Context, h http.Header) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, h)
	}
	return m.Key, m.Err
}

// Calls returns how many times Resolve was called.
func (m *MockKeySource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
