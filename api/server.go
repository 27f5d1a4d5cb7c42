/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/calculate      Run a calculation
  /api/tables/*       Browse the published tables
  /api/rates/*        Statutory rate lookup
  /api/cases/*        Saved case inputs

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)

		// Table browsing
		r.Route("/tables", func(r chi.Router) {
			r.Get("/consolation", h.Consolation)
			r.Get("/disability/{grade}", h.Disability)
			r.Get("/coefficient", h.Coefficient)
		})

		r.Route("/rates", func(r chi.Router) {
			r.Get("/statutory", h.StatutoryRate)
		})

		// Saved cases
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.ListCases)
			r.Post("/", h.SaveCase)
			r.Get("/{id}", h.GetCase)
			r.Delete("/{id}", h.DeleteCase)
			r.Post("/{id}/calculate", h.CalculateCase)
		})
	})

	return r
}
