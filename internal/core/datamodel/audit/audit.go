package audit

import "time"

// AuditLog rows are insert-only. No update or delete path exists anywhere in
// the codebase; immutability is structural, not conventional.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     *int64    `gorm:"column:user_id;index"`
	Action     string    `gorm:"column:action;not null;index"`
	Resource   string    `gorm:"column:resource;not null"`
	ResourceID *string   `gorm:"column:resource_id"`
	Details    string    `gorm:"column:details;type:jsonb"`
	Severity   string    `gorm:"column:severity;not null;index"`
	IPAddress  string    `gorm:"column:ip_address"`
	UserAgent  string    `gorm:"column:user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now();index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
