package gemini

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the shared client used for every upstream call. The
// transport keeps idle connections to the Gemini host so consecutive
// requests skip the TLS handshake.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 100
	transport.IdleConnTimeout = 120 * time.Second

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
