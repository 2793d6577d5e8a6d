package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
)

// PermissionResolver is the decision surface consumed by the guard
// middlewares. Satisfied by *accesscontrol.Resolver.
type PermissionResolver interface {
	CheckPermission(ctx context.Context, principal *accesscontrol.Principal, perm accesscontrol.Permission) (bool, error)
}

// RequirePermission gates a route on one capability. The resolver audits
// every evaluation; this middleware only translates the outcome to HTTP.
// Unauthenticated and forbidden are distinct statuses on purpose.
func RequirePermission(resolver PermissionResolver, logger *slog.Logger, perm accesscontrol.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := accesscontrol.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				logger.Warn("permission check failed: no principal in context", "permission", perm)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := resolver.CheckPermission(r.Context(), principal, perm)
			if err != nil {
				logger.Warn("permission check: unauthenticated", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed {
				logger.Warn("access denied: insufficient permissions",
					"user_id", principal.ID,
					"role", principal.Role)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
