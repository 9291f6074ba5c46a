package generation

import (
	"context"

	"github.com/phrazzld/gemini-proxy/internal/domain"
)

// Generator sends one resolved prompt upstream and returns the raw text of
// the first candidate.
type Generator interface {
	// Generate calls the upstream model named by req.ModelID with apiKey.
	// When req carries an upstream payload it is forwarded unchanged,
	// otherwise a single user turn is built from req.PromptText.
	//
	// Upstream failures are returned as *UpstreamError.
	Generate(ctx context.Context, apiKey string, req *domain.ResolvedRequest) (string, error)
}
