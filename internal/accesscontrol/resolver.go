package accesscontrol

import (
	"context"
	"log/slog"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/audit"
)

// Recorder is the audit sink the guards write to. Satisfied by
// *audit.Service.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry) (*audit.Entry, error)
}

// Resolver decides whether a principal may perform a capability. Every
// evaluation, allow or deny, appends exactly one audit entry.
type Resolver struct {
	table    *RoleTable
	recorder Recorder
	logger   *slog.Logger
}

func NewResolver(table *RoleTable, recorder Recorder, logger *slog.Logger) *Resolver {
	return &Resolver{
		table:    table,
		recorder: recorder,
		logger:   logger,
	}
}

// CheckPermission evaluates the capability check in order: inactive denies
// everything, sp allows everything, a per-user override is decisive when
// present, otherwise the role table decides. A nil principal is an
// authentication failure, not a denial, and is not audited as one.
func (r *Resolver) CheckPermission(ctx context.Context, principal *Principal, perm Permission) (bool, error) {
	if principal == nil {
		return false, internal.ErrUnauthenticated
	}

	if !principal.IsActive {
		r.recordDecision(ctx, principal, perm, false, "account_inactive")
		return false, nil
	}

	if principal.Role == RoleSP {
		r.recordDecision(ctx, principal, perm, true, "super_role")
		return true, nil
	}

	if allowed, present := principal.Override(perm); present {
		reason := "override_granted"
		if !allowed {
			reason = "override_revoked"
		}
		r.recordDecision(ctx, principal, perm, allowed, reason)
		return allowed, nil
	}

	if r.table.HasPermission(principal.Role, perm) {
		r.recordDecision(ctx, principal, perm, true, "role_grant")
		return true, nil
	}

	r.recordDecision(ctx, principal, perm, false, "not_granted")
	return false, nil
}

func (r *Resolver) recordDecision(ctx context.Context, principal *Principal, perm Permission, allowed bool, reason string) {
	action := audit.ActionAccessDenied
	severity := audit.SeverityMedium
	if allowed {
		action = audit.ActionPermissionGranted
		severity = audit.SeverityInfo
	}

	meta := RequestMetaFromContext(ctx)
	userID := principal.ID

	entry := audit.Entry{
		UserID:   &userID,
		Action:   action,
		Resource: string(perm),
		Details: map[string]any{
			"permission": string(perm),
			"role":       string(principal.Role),
			"reason":     reason,
		},
		Severity:  severity,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if meta.Method != "" {
		entry.Details["method"] = meta.Method
		entry.Details["path"] = meta.Path
	}

	// the decision stands regardless of audit persistence; Record logs failures
	if _, err := r.recorder.Record(ctx, entry); err != nil {
		r.logger.Error("permission decision audit not persisted",
			"user_id", principal.ID,
			"permission", perm,
			"allowed", allowed,
			"error", err)
	}
}
