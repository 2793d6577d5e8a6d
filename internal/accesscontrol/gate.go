package accesscontrol

import (
	"context"
	"log/slog"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/audit"
)

// Gate enforces a minimum clearance tier for high-sensitivity operations,
// layered on top of the permission resolver.
type Gate struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewGate(recorder Recorder, logger *slog.Logger) *Gate {
	return &Gate{
		recorder: recorder,
		logger:   logger,
	}
}

// CheckSecurityLevel allows iff the principal's tier ranks at or above the
// required tier. Inactive principals are denied outright, matching the
// resolver's handling. Both outcomes are audited so high-sensitivity
// operations leave a complete trail.
func (g *Gate) CheckSecurityLevel(ctx context.Context, principal *Principal, required SecurityLevel) (bool, error) {
	if principal == nil {
		return false, internal.ErrUnauthenticated
	}

	allowed := principal.IsActive && principal.SecurityLevel.AtLeast(required)
	g.recordDecision(ctx, principal, required, allowed)
	return allowed, nil
}

func (g *Gate) recordDecision(ctx context.Context, principal *Principal, required SecurityLevel, allowed bool) {
	action := audit.ActionSecurityLevelDenied
	severity := audit.SeverityHigh
	if allowed {
		action = audit.ActionSecurityLevelGranted
		severity = audit.SeverityInfo
	}

	meta := RequestMetaFromContext(ctx)
	userID := principal.ID

	entry := audit.Entry{
		UserID:   &userID,
		Action:   action,
		Resource: "security_level",
		Details: map[string]any{
			"requiredLevel": string(required),
			"userLevel":     string(principal.SecurityLevel),
			"active":        principal.IsActive,
		},
		Severity:  severity,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	if _, err := g.recorder.Record(ctx, entry); err != nil {
		g.logger.Error("security level decision audit not persisted",
			"user_id", principal.ID,
			"required_level", required,
			"allowed", allowed,
			"error", err)
	}
}
