package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

type Options struct {
	Logger         logging.Logger
	ServiceName    string
	RequestTimeout time.Duration
	Metrics        *Metrics
}

func NewRouter(
	opts Options,
	healthHandler *health.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, opts)

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", healthHandler.Check)

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.GetByID)
			r.Patch("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	r.NotFound(responses.WriteNotFound)
	r.MethodNotAllowed(responses.WriteMethodNotAllowed)

	return r
}
