package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/audit"
	"github.com/reformtrack/reform-management/internal/auth"
	"github.com/reformtrack/reform-management/internal/budget"
	"github.com/reformtrack/reform-management/internal/settings"
	"github.com/reformtrack/reform-management/internal/task"
	"github.com/reformtrack/reform-management/internal/transport/middleware"
	"github.com/reformtrack/reform-management/internal/transport/swagger"
	"github.com/reformtrack/reform-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Task     *task.Handler
	Budget   *budget.Handler
	Settings *settings.Handler
	Audit    *audit.Handler
	Roles    *accesscontrol.RolesHandler
}

// Guards bundles the access-control middleware dependencies.
type Guards struct {
	Resolver *accesscontrol.Resolver
	Gate     *accesscontrol.Gate
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, guards Guards, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestMetadata)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
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
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/tasks", func(tr chi.Router) {
				tr.With(requirePerm(guards, logger, accesscontrol.PermTasksCreate)).
					Post("/", h.Task.CreateTask)
				tr.With(requirePerm(guards, logger, accesscontrol.PermTasksRead)).
					Get("/", h.Task.ListTasks)
				tr.With(requirePerm(guards, logger, accesscontrol.PermTasksRead)).
					Get("/{id}", h.Task.GetTask)
				tr.With(requirePerm(guards, logger, accesscontrol.PermTasksUpdate)).
					Patch("/{id}", h.Task.UpdateTask)
				tr.With(requirePerm(guards, logger, accesscontrol.PermTasksDelete)).
					Delete("/{id}", h.Task.DeleteTask)
			})

			pr.Route("/budget-requests", func(br chi.Router) {
				br.With(requirePerm(guards, logger, accesscontrol.PermBudgetCreate)).
					Post("/", h.Budget.CreateBudgetRequest)
				br.With(requirePerm(guards, logger, accesscontrol.PermBudgetRead)).
					Get("/", h.Budget.ListBudgetRequests)
				br.With(requirePerm(guards, logger, accesscontrol.PermBudgetRead)).
					Get("/{id}", h.Budget.GetBudgetRequest)
				br.With(requirePerm(guards, logger, accesscontrol.PermBudgetApprove)).
					Patch("/{id}/approve", h.Budget.ApproveBudgetRequest)
				br.With(requirePerm(guards, logger, accesscontrol.PermBudgetReject)).
					Patch("/{id}/reject", h.Budget.RejectBudgetRequest)
			})

			pr.Get("/settings", h.Settings.ListSettings)
			pr.Get("/settings/{key}", h.Settings.GetSetting)

			// Administrative routes: each needs its permission key plus high
			// security clearance. The permission guard runs first so denials
			// are audited with the specific missing key.
			pr.Route("/admin", func(ar chi.Router) {
				ar.Route("/users", func(ur chi.Router) {
					ur.Use(requirePerm(guards, logger, accesscontrol.PermUsersManage))
					ur.Use(requireHigh(guards, logger))
					ur.Get("/", h.User.ListUsers)
					ur.Patch("/{id}/role", h.User.UpdateRole)
					ur.Patch("/{id}/security-level", h.User.UpdateSecurityLevel)
					ur.Put("/{id}/overrides", h.User.SetPermissionOverride)
					ur.Post("/{id}/deactivate", h.User.Deactivate)
				})

				ar.Route("/roles", func(rr chi.Router) {
					rr.Use(requirePerm(guards, logger, accesscontrol.PermRolesManage))
					rr.Use(requireHigh(guards, logger))
					rr.Get("/", h.Roles.ListRoles)
					rr.Put("/{role}", h.Roles.UpdateRolePermissions)
				})

				ar.Route("/audit", func(aur chi.Router) {
					aur.Use(requirePerm(guards, logger, accesscontrol.PermAuditRead))
					aur.Use(requireHigh(guards, logger))
					aur.Get("/", h.Audit.ListEntries)
				})

				ar.Route("/settings", func(sr chi.Router) {
					sr.Use(requirePerm(guards, logger, accesscontrol.PermSettingsManage))
					sr.Use(requireHigh(guards, logger))
					sr.Put("/{key}", h.Settings.UpsertSetting)
				})
			})
		})
	})
}

func requirePerm(guards Guards, logger *slog.Logger, perm accesscontrol.Permission) func(http.Handler) http.Handler {
	return middleware.RequirePermission(guards.Resolver, logger, perm)
}

func requireHigh(guards Guards, logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequireSecurityLevel(guards.Gate, logger, accesscontrol.SecurityHigh)
}
