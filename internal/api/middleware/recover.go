package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/gemini-proxy/internal/api/shared"
	"github.com/phrazzld/gemini-proxy/internal/platform/logger"
	"github.com/phrazzld/gemini-proxy/internal/redact"
)

// Recoverer turns a panic in a downstream handler into a JSON 500 response.
// Headers set by outer middleware, such as CORS, are kept.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"error", redact.String(fmt.Sprint(rec)),
				"path", r.URL.Path,
				"stack", string(debug.Stack()))

			// Headers already went out; nothing useful can be sent.
			if ww.Status() != 0 {
				return
			}
			shared.RespondWithError(ww, r, http.StatusInternalServerError,
				"Internal Server Error", "An unexpected error occurred")
		}()

		next.ServeHTTP(ww, r)
	})
}
