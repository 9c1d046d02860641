package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ivstoyanov/rolodex/internal/handlers"
	"github.com/ivstoyanov/rolodex/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	homeHandler *handlers.HomeHandler,
	authHandler *handlers.AuthHandler,
) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Registration and login are the unauthenticated surface, so they get
	// the per-IP rate limit.
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)

	// Every /home call carries its own credentials; the services validate
	// them per call, so no auth middleware sits here.
	router.Route("/home", func(r chi.Router) {
		r.Get("/", homeHandler.GetUsers)
		r.Delete("/", homeHandler.DeleteUser)
		r.Post("/", homeHandler.LogoutUser)
		r.Put("/", homeHandler.EditUser)
	})
}
