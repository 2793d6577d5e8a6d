package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/core/events"
)

// RepositoryAPI defines the data access methods for tasks.
type RepositoryAPI interface {
	Create(t *Task) error
	GetByID(id int64) (*Task, error)
	List(limit, offset int) ([]*Task, error)
	Update(t *Task) error
	Delete(id int64) error
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

func (s *Service) Create(ctx context.Context, userID int64, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	t := &Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusOpen,
		CreatedBy:   userID,
		AssigneeID:  dto.AssigneeID,
		DueDate:     dto.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err, "user_id", userID)
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewTaskCreatedEvent(t.ID, t.Title, userID))
	}

	s.logger.Info("task created", "task_id", t.ID, "user_id", userID)

	return t, nil
}

func (s *Service) GetByID(id int64) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}
	return t, nil
}

func (s *Service) List(limit, offset int) ([]*Task, error) {
	tasks, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Service) Update(ctx context.Context, userID, taskID int64, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	t, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.AssigneeID != nil {
		t.AssigneeID = dto.AssigneeID
	}
	if dto.DueDate != nil {
		t.DueDate = dto.DueDate
	}

	completed := false
	if dto.Status != nil && *dto.Status != t.Status {
		if *dto.Status == StatusDone {
			t.Complete()
			completed = true
		} else {
			t.Status = *dto.Status
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		return nil, err
	}

	if completed && s.bus != nil {
		s.bus.Publish(ctx, events.NewTaskCompletedEvent(taskID, userID))
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, taskID int64) error {
	if _, err := s.repo.GetByID(taskID); err != nil {
		return internal.ErrTaskNotFound
	}

	if err := s.repo.Delete(taskID); err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		return err
	}

	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}
