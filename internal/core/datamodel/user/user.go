package user

import "time"

type User struct {
	ID            int64     `gorm:"primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	Name          string    `gorm:"column:name;not null"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Role          string    `gorm:"column:role;not null;default:viewer"`
	SecurityLevel string    `gorm:"column:security_level;not null;default:standard"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// PermissionOverride is a per-user grant or revocation of a single permission
// key, layered on top of the user's role.
type PermissionOverride struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_user_permission"`
	Permission string    `gorm:"column:permission;not null;uniqueIndex:uniq_user_permission"`
	Allowed    bool      `gorm:"column:allowed;not null"`
	GrantedBy  *int64    `gorm:"column:granted_by"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:now()"`
}

func (PermissionOverride) TableName() string {
	return "user_permission_overrides"
}
