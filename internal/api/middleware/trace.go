package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/api/shared"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
)

// HeaderRequestID carries the trace ID on requests and responses.
const HeaderRequestID = "X-Request-ID"

// maxInboundTraceID bounds a caller-supplied trace ID.
const maxInboundTraceID = 128

// NewTraceMiddleware returns middleware that assigns every request a trace ID
// and a logger tagged with it. A well-formed inbound X-Request-ID is reused so
// that traces can span the caller and this service.
//
// It should be applied early in the middleware chain so that all subsequent
// handlers have access to the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(HeaderRequestID)
			if !validTraceID(traceID) {
				traceID = shared.NewTraceID()
			}

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithRequestID(ctx, traceID)
			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(HeaderRequestID, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxInboundTraceID {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
