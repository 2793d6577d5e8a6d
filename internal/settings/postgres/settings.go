package postgres

import (
	settingsDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/settings"
	"github.com/reformtrack/reform-management/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository implements the settings.RepositoryAPI interface using GORM.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetByKey(key string) (*settings.Setting, error) {
	var model settingsDatamodel.Setting
	if err := r.db.Where("key = ?", key).First(&model).Error; err != nil {
		return nil, err
	}
	return settings.FromDataModel(&model), nil
}

func (r *SettingsRepository) List() ([]*settings.Setting, error) {
	var models []*settingsDatamodel.Setting
	if err := r.db.Order("key ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return settings.FromDataModelSlice(models), nil
}

func (r *SettingsRepository) Upsert(s *settings.Setting) error {
	model := settings.ToDataModel(s)
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(model).Error
}
