package user

import (
	"time"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
	userDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/user"
)

type User struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	PasswordHash  string          `json:"-"`
	Role          string          `json:"role"`
	SecurityLevel string          `json:"security_level"`
	IsActive      bool            `json:"is_active"`
	Overrides     map[string]bool `json:"permissions,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToPrincipal projects the stored user onto the guard evaluation shape.
func (u *User) ToPrincipal() *accesscontrol.Principal {
	overrides := make(map[accesscontrol.Permission]bool, len(u.Overrides))
	for k, v := range u.Overrides {
		overrides[accesscontrol.Permission(k)] = v
	}
	return &accesscontrol.Principal{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          accesscontrol.Role(u.Role),
		SecurityLevel: accesscontrol.SecurityLevel(u.SecurityLevel),
		Overrides:     overrides,
		IsActive:      u.IsActive,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		Role:          u.Role,
		SecurityLevel: u.SecurityLevel,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		Role:          m.Role,
		SecurityLevel: m.SecurityLevel,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDataModelWithOverrides(m *userDatamodel.User, overrides []userDatamodel.PermissionOverride) *User {
	u := FromDataModel(m)
	u.Overrides = make(map[string]bool, len(overrides))
	for _, o := range overrides {
		u.Overrides[o.Permission] = o.Allowed
	}
	return u
}

func FromDataModelSlice(models []*userDatamodel.User) []*User {
	result := make([]*User, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
