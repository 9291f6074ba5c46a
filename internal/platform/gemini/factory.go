package gemini

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/generation"
)

// NewGenerator returns the backend selected by cfg.Backend.
func NewGenerator(httpClient *http.Client, cfg config.UpstreamConfig, log *slog.Logger) (generation.Generator, error) {
	var (
		gen generation.Generator
		err error
	)
	switch cfg.Backend {
	case config.BackendREST, "":
		gen, err = NewClient(httpClient, cfg, log)
	case config.BackendSDK:
		gen, err = NewSDKGenerator(httpClient, cfg, log)
	default:
		err = fmt.Errorf("%w: unknown backend %q", generation.ErrInvalidConfig, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}
