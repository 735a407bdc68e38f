package server

import (
	"net/http"

	"github.com/docrecall/docrecall/internal/api"
	"github.com/docrecall/docrecall/internal/api/handlers"
	"github.com/docrecall/docrecall/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	DocumentsHandler *handlers.DocumentsHandler
	AgentHandler     *handlers.AgentHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 50 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))
	r.Use(middleware.CORS)

	health := func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	r.Get("/health", health)
	r.Get("/api/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/documents", cfg.DocumentsHandler.List)
		r.Post("/documents", cfg.DocumentsHandler.Upload)
		r.Post("/agent", cfg.AgentHandler.Ask)
		r.Post("/search", cfg.AgentHandler.Search)
	})

	return r
}
