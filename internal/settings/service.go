package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/audit"
)

// RepositoryAPI defines the data access methods for settings.
type RepositoryAPI interface {
	GetByKey(key string) (*Setting, error)
	List() ([]*Setting, error)
	Upsert(s *Setting) error
}

// Recorder is the audit sink for setting changes.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry) (*audit.Entry, error)
}

type Service struct {
	repo     RepositoryAPI
	recorder Recorder
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *Service) GetByKey(key string) (*Setting, error) {
	if !ValidKey(key) {
		return nil, internal.NewValidationError("invalid settings key", internal.ErrCodeValidationFailed)
	}

	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, internal.ErrSettingNotFound
	}
	return setting, nil
}

func (s *Service) List() ([]*Setting, error) {
	all, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list settings", "error", err)
		return nil, err
	}
	return all, nil
}

// Upsert writes a setting value and records the change in the audit trail,
// including the previous value when one existed.
func (s *Service) Upsert(ctx context.Context, actorID int64, key string, dto UpsertSettingDTO) (*Setting, error) {
	if !ValidKey(key) {
		return nil, internal.NewValidationError("invalid settings key", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	var previous *string
	if existing, err := s.repo.GetByKey(key); err == nil {
		previous = &existing.Value
	}

	now := time.Now()
	setting := &Setting{
		Key:       key,
		Value:     dto.Value,
		UpdatedBy: &actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(setting); err != nil {
		s.logger.Error("failed to upsert setting", "error", err, "key", key)
		return nil, err
	}

	details := map[string]any{
		"key":       key,
		"new_value": dto.Value,
	}
	if previous != nil {
		details["previous_value"] = *previous
	}

	entry := audit.Entry{
		UserID:     &actorID,
		Action:     audit.ActionUpdateSetting,
		Resource:   "settings",
		ResourceID: &key,
		Details:    details,
		Severity:   audit.SeverityMedium,
	}
	if _, err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Error("setting change audit not persisted", "key", key, "error", err)
	}

	s.logger.Info("setting updated", "key", key, "actor_id", actorID)

	return s.repo.GetByKey(key)
}
