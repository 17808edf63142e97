package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/auth"
	"github.com/hrtools/employee-directory/internal/core/events"
	"github.com/hrtools/employee-directory/internal/department"
	"github.com/hrtools/employee-directory/internal/employee"
	"github.com/hrtools/employee-directory/internal/ratelimit"
	"github.com/hrtools/employee-directory/internal/transport/middleware"
	"github.com/hrtools/employee-directory/internal/transport/swagger"
	"github.com/hrtools/employee-directory/internal/user"
	"github.com/go-chi/chi"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Config            *internal.Config
	DB                *sql.DB
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	EmployeeHandler   *employee.Handler
	DepartmentHandler *department.Handler
	Limiter           *ratelimit.Limiter
	Events            *events.EventBus
	Logger            *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	// Global middleware. Order matters: recovery outermost, then metrics and
	// logging see every request including panics turned into 500s.
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	if deps.Config.Observability.Metrics.Enabled {
		router.Use(middleware.Instrument)
	}
	router.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	if deps.Config.Observability.Metrics.Enabled {
		router.Handle(deps.Config.Observability.Metrics.Path, middleware.MetricsHandler())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", deps.AuthHandler.Login)
			sr.Post("/signup", deps.UserHandler.Signup)
		})

		// Public department names for the signup form; grants stay private.
		r.Get("/departments", deps.DepartmentHandler.ListDepartments)

		// Protected routes: token check first, then per-identity admission
		// control, then the search pipeline.
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)
			pr.Use(middleware.RateLimit(deps.Limiter, deps.Events, deps.Logger))

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/search", deps.EmployeeHandler.SearchEmployees)
				er.Get("/filters", deps.EmployeeHandler.FilterOptions)
			})
		})
	})
}
