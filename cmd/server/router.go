package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if app.config.Server.TrustProxy {
		// Otherwise the rate limiter keys on the connection's RemoteAddr.
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigins))

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens)
	limit := apiMiddleware.RateLimit(
		app.limiter,
		app.config.RateLimit.Requests,
		app.config.RateLimit.Window(),
		app.metrics,
	)

	r.Route("/auth", func(r chi.Router) {
		r.With(limit).Post("/register", authHandler.Register)
		r.With(limit).Post("/login", authHandler.Login)
		r.Get("/health", authHandler.Health)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/recent", taskHandler.Recent)
		r.Get("/search", taskHandler.Search)
		r.Get("/stats", taskHandler.Stats)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Put("/{id}/complete", taskHandler.Complete)
		r.Put("/{id}/pending", taskHandler.Pending)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}
