package accesscontrol

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/reformtrack/reform-management/internal/audit"
	"github.com/reformtrack/reform-management/internal/transport"
	"github.com/reformtrack/reform-management/pkg/logger"
)

// RolesHandler exposes the role-to-permission table for administration.
type RolesHandler struct {
	*transport.BaseHandler
	Table    *RoleTable
	Recorder Recorder
}

func NewRolesHandler(table *RoleTable, recorder Recorder) *RolesHandler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &RolesHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		Table:       table,
		Recorder:    recorder,
	}
}

type roleGrants struct {
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
}

func (h *RolesHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles := h.Table.Roles()
	out := make([]roleGrants, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleGrants{
			Role:        role,
			Permissions: h.Table.Grants(role),
		})
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"roles": out,
	})
}

type updateRolePermissionsDTO struct {
	Permissions []Permission `json:"permissions"`
}

// UpdateRolePermissions replaces a role's granted keys wholesale. Unknown
// roles and unknown permission keys are rejected before anything is written.
func (h *RolesHandler) UpdateRolePermissions(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role := Role(chi.URLParam(r, "role"))
	if !role.Valid() {
		h.WriteError(w, http.StatusBadRequest, "unknown role")
		return
	}

	var dto updateRolePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, perm := range dto.Permissions {
		if !perm.Valid() {
			h.WriteError(w, http.StatusBadRequest, "unknown permission key: "+string(perm))
			return
		}
	}

	previous := h.Table.Grants(role)

	if err := h.Table.Replace(r.Context(), role, dto.Permissions); err != nil {
		h.Logger.Error("UpdateRolePermissions: replace failed", "error", err, "role", role)
		h.WriteError(w, http.StatusInternalServerError, "failed to update role permissions")
		return
	}

	h.recordRoleChange(r.Context(), principal.ID, role, previous, dto.Permissions)

	h.WriteJSON(w, http.StatusOK, roleGrants{
		Role:        role,
		Permissions: h.Table.Grants(role),
	})
}

func (h *RolesHandler) recordRoleChange(ctx context.Context, actorID int64, role Role, previous, next []Permission) {
	resourceID := string(role)
	entry := audit.Entry{
		UserID:     &actorID,
		Action:     audit.ActionUpdateRolePermissions,
		Resource:   "roles",
		ResourceID: &resourceID,
		Details: map[string]any{
			"previous_permissions": previous,
			"new_permissions":      next,
		},
		Severity: audit.SeverityHigh,
	}

	if _, err := h.Recorder.Record(ctx, entry); err != nil {
		h.Logger.Error("role change audit not persisted", "role", role, "error", err)
	}
}
