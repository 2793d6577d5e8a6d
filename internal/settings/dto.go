package settings

import (
	"errors"
	"regexp"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9]+(\.[a-z0-9_]+)*$`)

// UpsertSettingDTO is the payload for writing a setting value.
type UpsertSettingDTO struct {
	Value string `json:"value"`
}

func (dto UpsertSettingDTO) Validate() error {
	if len(dto.Value) > 4096 {
		return errors.New("value must be less than 4096 characters")
	}
	return nil
}

// ValidKey reports whether a settings key is well formed, e.g.
// "tasks.default_due_days" or "ai.enabled".
func ValidKey(key string) bool {
	return key != "" && len(key) <= 128 && keyPattern.MatchString(key)
}
