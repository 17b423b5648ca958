package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dsetiawan/contact-api/internal/api/middleware"
)

// NewRouter builds the application router with all routes and middleware.
// Path id segments are constrained to digits at the router, so a
// non-numeric id never matches a route and falls through to a 404.
func NewRouter(
	userHandler *UserHandler,
	contactHandler *ContactHandler,
	addressHandler *AddressHandler,
	authMiddleware *middleware.AuthMiddleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/current", userHandler.Get)
			r.Patch("/users/current", userHandler.Update)
			r.Delete("/users/current", userHandler.Logout)

			r.Post("/contacts", contactHandler.Create)
			r.Get("/contacts", contactHandler.Search)
			r.Route("/contacts/{contactID:[0-9]+}", func(r chi.Router) {
				r.Get("/", contactHandler.Get)
				r.Put("/", contactHandler.Update)
				r.Delete("/", contactHandler.Delete)

				r.Post("/addresses", addressHandler.Create)
				r.Get("/addresses", addressHandler.List)
				r.Route("/addresses/{addressID:[0-9]+}", func(r chi.Router) {
					r.Get("/", addressHandler.Get)
					r.Put("/", addressHandler.Update)
					r.Delete("/", addressHandler.Delete)
				})
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
