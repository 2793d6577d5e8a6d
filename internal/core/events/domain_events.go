package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTaskCreated    = "task.created"
	EventTypeTaskCompleted  = "task.completed"
	EventTypeBudgetApproved = "budget.approved"
	EventTypeBudgetRejected = "budget.rejected"
)

type TaskCreatedEvent struct {
	BaseEvent
	TaskID    int64  `json:"task_id"`
	Title     string `json:"title"`
	CreatedBy int64  `json:"created_by"`
}

func NewTaskCreatedEvent(taskID int64, title string, createdBy int64) *TaskCreatedEvent {
	return &TaskCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":    taskID,
				"title":      title,
				"created_by": createdBy,
			},
		},
		TaskID:    taskID,
		Title:     title,
		CreatedBy: createdBy,
	}
}

type TaskCompletedEvent struct {
	BaseEvent
	TaskID      int64 `json:"task_id"`
	CompletedBy int64 `json:"completed_by"`
}

func NewTaskCompletedEvent(taskID, completedBy int64) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":      taskID,
				"completed_by": completedBy,
			},
		},
		TaskID:      taskID,
		CompletedBy: completedBy,
	}
}

type BudgetReviewedEvent struct {
	BaseEvent
	RequestID  int64  `json:"request_id"`
	AmountINR  int64  `json:"amount_inr"`
	ReviewedBy int64  `json:"reviewed_by"`
	Outcome    string `json:"outcome"`
}

func NewBudgetReviewedEvent(requestID, amountINR, reviewedBy int64, outcome string) *BudgetReviewedEvent {
	eventType := EventTypeBudgetApproved
	if outcome == "rejected" {
		eventType = EventTypeBudgetRejected
	}
	return &BudgetReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":  requestID,
				"amount_inr":  amountINR,
				"reviewed_by": reviewedBy,
				"outcome":     outcome,
			},
		},
		RequestID:  requestID,
		AmountINR:  amountINR,
		ReviewedBy: reviewedBy,
		Outcome:    outcome,
	}
}
