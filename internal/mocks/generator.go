package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/generation"
)

// DefaultText is returned by a MockGenerator with no configured response.
const DefaultText = "Hi there"

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, apiKey string, req *domain.ResolvedRequest) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		Count    int
		APIKeys  []string
		Requests []*domain.ResolvedRequest
	}
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, apiKey string, req *domain.ResolvedRequest) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.APIKeys = append(m.GenerateCalls.APIKeys, apiKey)
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, apiKey, req)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Text == "" {
		return DefaultText, nil
	}
	return m.Text, nil
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastCall returns the key and request of the most recent call, or zero
// values if Generate was never called.
func (m *MockGenerator) LastCall() (string, *domain.ResolvedRequest) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	n := len(m.GenerateCalls.Requests)
	if n == 0 {
		return "", nil
	}
	return m.GenerateCalls.APIKeys[n-1], m.GenerateCalls.Requests[n-1]
}

// NewMockGeneratorWithText creates a MockGenerator that returns text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockGeneratorThatFails simulates a non-2xx answer from the upstream.
func MockGeneratorThatFails(status int, body string) *MockGenerator {
	return &MockGenerator{
		Err: &generation.UpstreamError{
			Kind:       generation.ErrUpstreamRequestFailed,
			StatusCode: status,
			Body:       body,
		},
	}
}

// MockGeneratorWithEmptyResult simulates an upstream answer without candidates.
func MockGeneratorWithEmptyResult() *MockGenerator {
	return &MockGenerator{Err: generation.NewEmptyResult(generation.ErrNoCandidates)}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.APIKeys = nil
	m.GenerateCalls.Requests = nil
}
