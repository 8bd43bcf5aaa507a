package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/v1/users", h.register)
		r.Post("/api/v1/auth/login", h.login)
	})

	// routes for authenticated accounts
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/v1/users/me", h.me)
		r.Get("/api/v1/users/{id}", h.getUser)

		// routes for admins only
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/api/v1/users", h.listUsers)
			r.Patch("/api/v1/users/{id}", h.updateUser)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
