package audit

import (
	"encoding/json"
	"time"

	auditDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/audit"
)

// Severity classifies how sensitive the recorded action is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Actions written by the access-control guards.
const (
	ActionPermissionGranted    = "permission_granted"
	ActionAccessDenied         = "access_denied"
	ActionSecurityLevelGranted = "security_level_granted"
	ActionSecurityLevelDenied  = "security_level_denied"
)

// Actions written by administrative handlers.
const (
	ActionUpdateUserRole        = "update_user_role"
	ActionUpdateSecurityLevel   = "update_security_level"
	ActionSetPermissionOverride = "set_permission_override"
	ActionDeactivateUser        = "deactivate_user"
	ActionUpdateRolePermissions = "update_role_permissions"
	ActionUpdateSetting         = "update_setting"
)

// Entry is one immutable audit record. UserID is nil for system actions.
type Entry struct {
	ID         int64          `json:"id"`
	UserID     *int64         `json:"user_id,omitempty"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID *string        `json:"resource_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Severity   Severity       `json:"severity"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func ToDataModel(e *Entry) (*auditDatamodel.AuditLog, error) {
	details := "{}"
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, err
		}
		details = string(raw)
	}

	return &auditDatamodel.AuditLog{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Details:    details,
		Severity:   string(e.Severity),
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		CreatedAt:  e.CreatedAt,
	}, nil
}

func FromDataModel(m *auditDatamodel.AuditLog) *Entry {
	entry := &Entry{
		ID:         m.ID,
		UserID:     m.UserID,
		Action:     m.Action,
		Resource:   m.Resource,
		ResourceID: m.ResourceID,
		Severity:   Severity(m.Severity),
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.CreatedAt,
	}

	if m.Details != "" {
		var details map[string]any
		if err := json.Unmarshal([]byte(m.Details), &details); err == nil {
			entry.Details = details
		}
	}

	return entry
}

func FromDataModelSlice(models []*auditDatamodel.AuditLog) []*Entry {
	result := make([]*Entry, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
