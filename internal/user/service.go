package user

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/audit"
)

// RepositoryAPI defines the data access methods for users. Users are never
// deleted, only deactivated.
type RepositoryAPI interface {
	GetByID(userID int64) (*User, error)
	List(limit, offset int) ([]*User, error)
	UpdateRole(userID int64, role string) error
	UpdateSecurityLevel(userID int64, level string) error
	UpsertOverride(userID int64, permission string, allowed bool, grantedBy int64) error
	Deactivate(userID int64) error
}

// Recorder is the audit sink for administrative actions.
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

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) List(limit, offset int) ([]*User, error) {
	users, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// UpdateRole changes the target's role. The change itself is audited
// unconditionally; the permission/clearance checks already ran in middleware.
func (s *Service) UpdateRole(ctx context.Context, actorID, targetID int64, dto UpdateRoleDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeUnknownRole)
	}

	target, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	previousRole := target.Role

	if err := s.repo.UpdateRole(targetID, dto.Role); err != nil {
		s.logger.Error("failed to update user role", "error", err, "user_id", targetID)
		return nil, err
	}

	s.recordAdminAction(ctx, actorID, targetID, audit.ActionUpdateUserRole, audit.SeverityHigh, map[string]any{
		"previous_role": previousRole,
		"new_role":      dto.Role,
	})

	s.logger.Info("user role updated",
		"actor_id", actorID,
		"user_id", targetID,
		"previous_role", previousRole,
		"new_role", dto.Role)

	return s.repo.GetByID(targetID)
}

func (s *Service) UpdateSecurityLevel(ctx context.Context, actorID, targetID int64, dto UpdateSecurityLevelDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	target, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	previousLevel := target.SecurityLevel

	if err := s.repo.UpdateSecurityLevel(targetID, dto.SecurityLevel); err != nil {
		s.logger.Error("failed to update security level", "error", err, "user_id", targetID)
		return nil, err
	}

	s.recordAdminAction(ctx, actorID, targetID, audit.ActionUpdateSecurityLevel, audit.SeverityHigh, map[string]any{
		"previous_level": previousLevel,
		"new_level":      dto.SecurityLevel,
	})

	return s.repo.GetByID(targetID)
}

func (s *Service) SetPermissionOverride(ctx context.Context, actorID, targetID int64, dto SetOverrideDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetByID(targetID); err != nil {
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.UpsertOverride(targetID, dto.Permission, dto.Allowed, actorID); err != nil {
		s.logger.Error("failed to set permission override", "error", err, "user_id", targetID)
		return nil, err
	}

	s.recordAdminAction(ctx, actorID, targetID, audit.ActionSetPermissionOverride, audit.SeverityHigh, map[string]any{
		"permission": dto.Permission,
		"allowed":    dto.Allowed,
	})

	return s.repo.GetByID(targetID)
}

// Deactivate disables the account. Past audit entries keep their userId; the
// record itself stays in place.
func (s *Service) Deactivate(ctx context.Context, actorID, targetID int64) (*User, error) {
	target, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if !target.IsActive {
		return target, nil
	}

	if err := s.repo.Deactivate(targetID); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", targetID)
		return nil, err
	}

	s.recordAdminAction(ctx, actorID, targetID, audit.ActionDeactivateUser, audit.SeverityCritical, map[string]any{
		"email": target.Email,
	})

	s.logger.Info("user deactivated", "actor_id", actorID, "user_id", targetID)

	return s.repo.GetByID(targetID)
}

func (s *Service) recordAdminAction(ctx context.Context, actorID, targetID int64, action string, severity audit.Severity, details map[string]any) {
	resourceID := strconv.FormatInt(targetID, 10)
	details["target_user_id"] = targetID

	entry := audit.Entry{
		UserID:     &actorID,
		Action:     action,
		Resource:   "users",
		ResourceID: &resourceID,
		Details:    details,
		Severity:   severity,
	}

	if _, err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Error("admin action audit not persisted",
			"action", action,
			"actor_id", actorID,
			"target_id", targetID,
			"error", err)
	}
}
