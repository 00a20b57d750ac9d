package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/dcampelo/permit-management/internal/apr"
	"github.com/dcampelo/permit-management/internal/auth"
	"github.com/dcampelo/permit-management/internal/permit"
	"github.com/dcampelo/permit-management/internal/transport/middleware"
	"github.com/dcampelo/permit-management/internal/transport/swagger"
	"github.com/dcampelo/permit-management/internal/user"
)

type Handlers struct {
	Auth   *auth.Handler
	User   *user.Handler
	Permit *permit.Handler
	Apr    *apr.Handler
}

// RegisterAllRoutes mounts the API. Registration and login are public;
// everything that mutates state requires a valid access token. Roles are
// stored on the account, not enforced here.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec at root, swagger UI next to it
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Post("/users", h.User.Register)
		r.Get("/users", h.User.ListUsers)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/{id}", h.User.GetUser)
			pr.Put("/users/{id}", h.User.UpdateUser)
			pr.Delete("/users/{id}", h.User.DeleteUser)

			pr.Route("/permits", func(er chi.Router) {
				er.Post("/", h.Permit.IssuePermit)
				er.Get("/", h.Permit.ListPermits)
				er.Get("/raw", h.Permit.ListPermitsRaw)

				er.Post("/{id}/apr", h.Apr.AttachChecklistForPermit)
				er.Get("/{id}/apr", h.Apr.ListForPermit)
			})

			// body-addressed variant kept for clients sending permit_id inline
			pr.Post("/apr", h.Apr.AttachChecklist)
		})
	})
}
