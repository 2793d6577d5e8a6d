package postgres

import (
	"time"

	userDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/user"
	"github.com/reformtrack/reform-management/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements the user.RepositoryAPI interface using GORM.
// There is no delete method; accounts are only ever deactivated.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.First(&model, userID).Error; err != nil {
		return nil, err
	}

	var overrides []userDatamodel.PermissionOverride
	if err := r.db.Where("user_id = ?", userID).Find(&overrides).Error; err != nil {
		return nil, err
	}

	return user.FromDataModelWithOverrides(&model, overrides), nil
}

func (r *UserRepository) List(limit, offset int) ([]*user.User, error) {
	var models []*userDatamodel.User
	err := r.db.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(models), nil
}

func (r *UserRepository) UpdateRole(userID int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) UpdateSecurityLevel(userID int64, level string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"security_level": level,
			"updated_at":     time.Now(),
		}).Error
}

func (r *UserRepository) UpsertOverride(userID int64, permission string, allowed bool, grantedBy int64) error {
	override := userDatamodel.PermissionOverride{
		UserID:     userID,
		Permission: permission,
		Allowed:    allowed,
		GrantedBy:  &grantedBy,
		UpdatedAt:  time.Now(),
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission"}},
		DoUpdates: clause.AssignmentColumns([]string{"allowed", "granted_by", "updated_at"}),
	}).Create(&override).Error
}

func (r *UserRepository) Deactivate(userID int64) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
