package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API. A positive requestTimeout bounds every /api
// request, cancelling its context when exceeded.
func NewRouter(server *Server, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.HealthCheck)
	r.Get("/openapi.yaml", server.ServeOpenAPISpec)

	r.Route("/api", func(r chi.Router) {
		if requestTimeout > 0 {
			r.Use(middleware.Timeout(requestTimeout))
		}

		r.Post("/webhook", server.HandleWebhook)

		r.Group(func(r chi.Router) {
			r.Use(server.RequireSession)

			r.Get("/dash-data", server.HandleDashData)
			r.Post("/last-viewed", server.HandleLastViewed)

			r.Post("/automerge", server.HandleAutomergeSet)
			r.Get("/automerge/{owner}/{repo}/{number}", server.HandleAutomergeGet)

			r.Post("/push-subscription", server.HandlePushSubscribe)
			r.Delete("/push-subscription", server.HandlePushUnsubscribe)

			r.Post("/logout", server.HandleLogout)
		})
	})

	return r
}
