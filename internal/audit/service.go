package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/reformtrack/reform-management/internal"
)

// RepositoryAPI is the insert-and-read-only persistence contract. There is
// deliberately no update or delete method.
type RepositoryAPI interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

// Service records and queries audit entries. Writes are bounded by
// writeTimeout so a slow insert cannot stall the guarded request.
type Service struct {
	repo         RepositoryAPI
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewService(repo RepositoryAPI, logger *slog.Logger, writeTimeout time.Duration) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		writeTimeout: writeTimeout,
	}
}

// Record persists the entry and returns it with its generated id and
// timestamp. The returned error is informational for callers on the
// decision path: a failed audit write must never change an allow/deny
// outcome, so callers log and continue.
func (s *Service) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if !entry.Severity.Valid() {
		entry.Severity = SeverityInfo
	}

	writeCtx, cancel := internal.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	persisted, err := s.repo.Create(writeCtx, &entry)
	if err != nil {
		s.logger.Error("audit write failed",
			"action", entry.Action,
			"resource", entry.Resource,
			"severity", entry.Severity,
			"error", err)
		return nil, err
	}

	return persisted, nil
}

// List returns entries newest-first, filtered and capped per the dto rules.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	if err := filter.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	filter.Normalize()

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("audit list failed", "error", err)
		return nil, err
	}

	return entries, nil
}
