package settings

import (
	"time"

	settingsDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/settings"
)

// Setting is a single application-wide configuration value keyed by name.
type Setting struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy *int64    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(s *Setting) *settingsDatamodel.Setting {
	return &settingsDatamodel.Setting{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		UpdatedBy: s.UpdatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(m *settingsDatamodel.Setting) *Setting {
	return &Setting{
		ID:        m.ID,
		Key:       m.Key,
		Value:     m.Value,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*settingsDatamodel.Setting) []*Setting {
	result := make([]*Setting, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
