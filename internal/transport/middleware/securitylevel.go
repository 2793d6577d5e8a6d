package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
)

// SecurityLevelGate is satisfied by *accesscontrol.Gate.
type SecurityLevelGate interface {
	CheckSecurityLevel(ctx context.Context, principal *accesscontrol.Principal, required accesscontrol.SecurityLevel) (bool, error)
}

// RequireSecurityLevel gates a route on a minimum clearance tier. Routes
// that need both checks mount RequirePermission first, then this, so the
// coarse capability check runs before the fine clearance check.
func RequireSecurityLevel(gate SecurityLevelGate, logger *slog.Logger, required accesscontrol.SecurityLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := accesscontrol.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				logger.Warn("security level check failed: no principal in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := gate.CheckSecurityLevel(r.Context(), principal, required)
			if err != nil {
				logger.Warn("security level check: unauthenticated", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed {
				logger.Warn("access denied: insufficient security clearance",
					"user_id", principal.ID)
				http.Error(w, "Forbidden: insufficient security clearance", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
