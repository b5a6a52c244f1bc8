// Package router sets up all HTTP routes and middleware chains for the
// Quillpress API. Reads are open; mutating routes additionally pass through
// the rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/handlers"
	"quillpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(posts *handlers.Posts, categories *handlers.Categories, limiter middleware.Limiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	limit := middleware.RateLimit(limiter)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)

			r.Group(func(r chi.Router) {
				r.Use(limit)
				r.Post("/", categories.Create)
				r.Patch("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/published", posts.ListPublished)
			r.Get("/page", posts.Page)
			r.Get("/slug/{slug}", posts.BySlug)
			r.Get("/slug/{slug}/categories", posts.CategoriesBySlug)
			r.Get("/{id}", posts.ByID)
			r.Get("/{id}/categories", posts.Categories)

			r.Group(func(r chi.Router) {
				r.Use(limit)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Put("/{id}/categories", posts.SetCategories)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, `{"error":"not found"}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, `{"error":"method not allowed"}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, `{"status":"ok"}`)
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
