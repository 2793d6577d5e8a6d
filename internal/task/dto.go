package task

import (
	"errors"
	"time"
)

// CreateTaskDTO represents the request payload for creating a reform task.
type CreateTaskDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (dto CreateTaskDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if len(dto.Description) > 2000 {
		return errors.New("description must be less than 2000 characters")
	}
	return nil
}

// UpdateTaskDTO carries a partial task update; nil fields are untouched.
type UpdateTaskDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (dto UpdateTaskDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return errors.New("title cannot be empty")
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return errors.New("status must be one of open, in_progress, done")
	}
	return nil
}
