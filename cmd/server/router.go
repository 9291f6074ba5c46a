package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/gemini-proxy/internal/api"
	apiMiddleware "github.com/phrazzld/gemini-proxy/internal/api/middleware"
	"github.com/phrazzld/gemini-proxy/internal/api/shared"
)

// setupRouter creates the router with all routes and middleware.
//
// CORS runs outermost so that every response, including preflights, 404s and
// recovered panics, carries the allow-origin header.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(apiMiddleware.CORS)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)

	h := app.handler

	r.Get("/", h.Info)
	r.Post("/", h.Generate)
	r.Get("/health", h.Health)

	// Gemini-native clients post to /v1beta/models/<model>:generateContent.
	// Other model methods, streamGenerateContent included, fall through to 404.
	r.Post("/{version}/models/{model:[^/]+:generateContent}", h.Generate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, api.CategoryNotFound,
			"No route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, api.CategoryMethodNotAllowed,
			"Method "+r.Method+" is not supported on "+r.URL.Path)
	})

	return r
}
