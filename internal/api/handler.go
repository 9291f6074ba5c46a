package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/api/shared"
	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/phrazzld/gemini-proxy/internal/service"
)

// ProxyHandler serves the proxy's HTTP endpoints.
type ProxyHandler struct {
	service      service.ProxyService
	maxBodyBytes int64
	info         ServiceInfo
}

// NewProxyHandler creates a ProxyHandler. maxBodyBytes caps inbound bodies;
// zero or less disables the cap.
func NewProxyHandler(svc service.ProxyService, maxBodyBytes int64, info ServiceInfo) *ProxyHandler {
	return &ProxyHandler{
		service:      svc,
		maxBodyBytes: maxBodyBytes,
		info:         info,
	}
}

// Info serves the static service description.
func (h *ProxyHandler) Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.info)
}

// Health reports liveness.
func (h *ProxyHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Generate proxies one prompt to the upstream model. The request path is
// handed to the service so /{version}/models/{model}:generateContent routes
// can override the model.
func (h *ProxyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := shared.ReadBody(w, r, h.maxBodyBytes)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.service.Generate(r.Context(), service.ProxyRequest{
		Body:   body,
		Path:   r.URL.Path,
		Header: r.Header,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// handleError maps err onto a status, category and client-safe message.
func (h *ProxyHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	// A request without any key is routine; a rejected key is worth seeing.
	if errors.Is(err, domain.ErrInvalidAPIKeyFormat) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, ErrorCategory(err), GetSafeErrorMessage(err), err, opts...)
}
