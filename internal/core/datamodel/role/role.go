package role

import "time"

// Role is the registry row for a named permission bundle. Grants live in
// role_permissions keyed by the role name; the enforcement path reads both
// through the access-control role table snapshot, so this store is the
// single source of truth.
type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}

type RolePermission struct {
	ID         int64     `gorm:"primaryKey"`
	Role       string    `gorm:"column:role;not null;uniqueIndex:uniq_role_permission"`
	Permission string    `gorm:"column:permission;not null;uniqueIndex:uniq_role_permission"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
