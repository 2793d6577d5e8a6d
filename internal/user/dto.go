package user

import (
	"errors"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
)

// UpdateRoleDTO carries an administrative role change.
type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d UpdateRoleDTO) Validate() error {
	if d.Role == "" {
		return errors.New("role is required")
	}
	if !accesscontrol.Role(d.Role).Valid() {
		return errors.New("unknown role")
	}
	return nil
}

// UpdateSecurityLevelDTO carries a clearance tier change.
type UpdateSecurityLevelDTO struct {
	SecurityLevel string `json:"security_level"`
}

func (d UpdateSecurityLevelDTO) Validate() error {
	if d.SecurityLevel == "" {
		return errors.New("security_level is required")
	}
	if !accesscontrol.SecurityLevel(d.SecurityLevel).Valid() {
		return errors.New("unknown security level")
	}
	return nil
}

// SetOverrideDTO grants or revokes one permission key for one user.
type SetOverrideDTO struct {
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

func (d SetOverrideDTO) Validate() error {
	if d.Permission == "" {
		return errors.New("permission is required")
	}
	if !accesscontrol.Permission(d.Permission).Valid() {
		return errors.New("unknown permission key")
	}
	return nil
}
