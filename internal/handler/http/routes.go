package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	collectionParam = "collection"
	entityIDParam   = "id"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Post("/api/auth/token", h.issueToken)
	})

	// tenant-scoped entity routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/{collection}", h.listEntities)
		r.Post("/api/{collection}", h.createEntity)
		r.Get("/api/{collection}/{id}", h.getEntity)
		r.Put("/api/{collection}/{id}", h.updateEntity)
		r.Delete("/api/{collection}/{id}", h.deleteEntity)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
