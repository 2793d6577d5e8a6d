package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/core/events"
)

// RepositoryAPI defines the data access methods for budget requests.
type RepositoryAPI interface {
	Create(b *BudgetRequest) error
	GetByID(id int64) (*BudgetRequest, error)
	GetByUserID(userID int64, limit, offset int) ([]*BudgetRequest, error)
	GetAll(limit, offset int) ([]*BudgetRequest, error)
	Update(b *BudgetRequest) error
}

// Publisher dispatches domain events; satisfied by *events.EventBus.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateBudgetRequestDTO) (*BudgetRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	b := &BudgetRequest{
		UserID:      userID,
		AmountINR:   dto.AmountINR,
		Purpose:     dto.Purpose,
		Category:    dto.Category,
		Status:      StatusPendingApproval,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(b); err != nil {
		s.logger.Error("failed to create budget request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("budget request submitted",
		"request_id", b.ID,
		"user_id", userID,
		"amount_inr", b.AmountINR)

	return b, nil
}

func (s *Service) GetByID(id int64) (*BudgetRequest, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrBudgetNotFound
	}
	return b, nil
}

func (s *Service) ListForUser(userID int64, limit, offset int) ([]*BudgetRequest, error) {
	requests, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list budget requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListAll(limit, offset int) ([]*BudgetRequest, error) {
	requests, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list budget requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// Approve moves a pending request to approved. Requests that were already
// reviewed cannot be reviewed again.
func (s *Service) Approve(ctx context.Context, reviewerID, requestID int64) (*BudgetRequest, error) {
	b, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrBudgetNotFound
	}

	if !b.CanBeReviewed() {
		return nil, internal.NewConflictError("budget request already reviewed", internal.ErrCodeInvalidStatus)
	}

	b.Approve(reviewerID)
	if err := s.repo.Update(b); err != nil {
		s.logger.Error("failed to approve budget request", "error", err, "request_id", requestID)
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewBudgetReviewedEvent(b.ID, b.AmountINR, reviewerID, "approved"))
	}

	s.logger.Info("budget request approved",
		"request_id", b.ID,
		"reviewer_id", reviewerID,
		"amount_inr", b.AmountINR)

	return b, nil
}

func (s *Service) Reject(ctx context.Context, reviewerID, requestID int64, dto RejectBudgetRequestDTO) (*BudgetRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	b, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrBudgetNotFound
	}

	if !b.CanBeReviewed() {
		return nil, internal.NewConflictError("budget request already reviewed", internal.ErrCodeInvalidStatus)
	}

	b.Reject(reviewerID, dto.Reason)
	if err := s.repo.Update(b); err != nil {
		s.logger.Error("failed to reject budget request", "error", err, "request_id", requestID)
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewBudgetReviewedEvent(b.ID, b.AmountINR, reviewerID, "rejected"))
	}

	s.logger.Info("budget request rejected",
		"request_id", b.ID,
		"reviewer_id", reviewerID,
		"reason", dto.Reason)

	return b, nil
}
