package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BetulAktoprak/task-management-system/internal/api"
	apiMiddleware "github.com/BetulAktoprak/task-management-system/internal/api/middleware"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/notify"
)

// setupRouter registers the REST API, the notification hub and the health
// check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// No chi request logger: it logs the raw request URI, which carries the
	// handshake credential.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.issuer)

	admins := apiMiddleware.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/projects", projectHandler.List)
			r.Get("/projects/{id}", projectHandler.Get)
			r.Post("/projects", projectHandler.Create)
			r.Put("/projects/{id}", projectHandler.Update)

			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/project/{projectId}", taskHandler.ListByProject)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Put("/tasks/{id}/assign", taskHandler.Assign)

			r.Get("/dashboard/stats", dashboardHandler.Stats)

			r.Get("/users/me", userHandler.Me)
			r.With(admins).Get("/users", userHandler.List)
			r.With(admins).Get("/users/roles", userHandler.Roles)
			r.With(admins).Put("/users/{id}/role", userHandler.ChangeRole)
		})
	})

	// The hub authenticates the handshake itself: browsers cannot set
	// headers on a WebSocket upgrade, so the credential comes in the query.
	r.Method(http.MethodGet, notify.Route, app.hub)

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	r.Method(http.MethodGet, "/health", api.NewHealthHandler(pinger, app.hub.Registry().Len))

	return r
}
