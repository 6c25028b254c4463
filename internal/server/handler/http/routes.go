package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"contactdesk/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the API.
// It applies JSON content-type enforcement and request logging globally,
// rate limits the credential endpoints, and protects /api/v1 with JWT
// bearer authentication.
//
// Routes:
//
//	POST /api/auth/register  → authHandler.Register
//	POST /api/auth/login     → authHandler.Login
//	POST /api/auth/refresh   → authHandler.Refresh
//	POST /api/auth/logout    → authHandler.Logout (authenticated)
//
//	/api/v1/contacts, /api/v1/tasks, /api/v1/appointments, /api/v1/projects
//	each expose POST, GET, GET /{id}, PUT /{id}, DELETE /{id}.
func NewRouter(
	authHandler *AuthHandler,
	contactHandler *ContactHandler,
	taskHandler *TaskHandler,
	appointmentHandler *AppointmentHandler,
	projectHandler *ProjectHandler,
	jwtSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	authLimiter := middleware.NewRateLimiter(5, 10)

	r.Route("/api/auth", func(r chi.Router) {
		// Credential endpoints are rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(authLimiter))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(jwtSecret))
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Get("/", contactHandler.List)
			r.Get("/{id}", contactHandler.Get)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", appointmentHandler.Create)
			r.Get("/", appointmentHandler.List)
			r.Get("/{id}", appointmentHandler.Get)
			r.Put("/{id}", appointmentHandler.Update)
			r.Delete("/{id}", appointmentHandler.Delete)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})
	})

	return r
}
