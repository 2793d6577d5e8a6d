package postgres

import (
	"context"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
	roleDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/role"
	"gorm.io/gorm"
)

// RoleRepository implements accesscontrol.RoleStore using GORM. Grants are
// keyed by role name, matching the role_permissions schema and the seeder.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) accesscontrol.RoleStore {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) LoadRolePermissions(ctx context.Context) (map[accesscontrol.Role][]accesscontrol.Permission, error) {
	var rows []roleDatamodel.RolePermission
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	mapping := make(map[accesscontrol.Role][]accesscontrol.Permission)
	for _, row := range rows {
		role := accesscontrol.Role(row.Role)
		mapping[role] = append(mapping[role], accesscontrol.Permission(row.Permission))
	}

	return mapping, nil
}

func (r *RoleRepository) ReplaceRolePermissions(ctx context.Context, role accesscontrol.Role, permissions []accesscontrol.Permission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// keep the roles registry consistent with the grants
		registry := roleDatamodel.Role{Name: string(role)}
		if err := tx.Where("name = ?", string(role)).FirstOrCreate(&registry).Error; err != nil {
			return err
		}

		if err := tx.Where("role = ?", string(role)).
			Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}

		for _, p := range permissions {
			if err := tx.Create(&roleDatamodel.RolePermission{
				Role:       string(role),
				Permission: string(p),
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
