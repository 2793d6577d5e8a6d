package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reformtrack/reform-management/internal/core/events"
)

// Subscriber mirrors domain events into the audit trail so that task and
// budget activity shows up alongside access-control decisions.
type Subscriber struct {
	service *Service
	logger  *slog.Logger
}

func NewSubscriber(service *Service, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		service: service,
		logger:  logger,
	}
}

// RegisterHandlers attaches the subscriber to the event bus.
func (s *Subscriber) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeTaskCreated, s.handleTaskCreated)
	bus.Subscribe(events.EventTypeTaskCompleted, s.handleTaskCompleted)
	bus.Subscribe(events.EventTypeBudgetApproved, s.handleBudgetReviewed)
	bus.Subscribe(events.EventTypeBudgetRejected, s.handleBudgetReviewed)
}

func (s *Subscriber) handleTaskCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	resourceID := fmt.Sprintf("%d", e.TaskID)
	_, err := s.service.Record(ctx, Entry{
		UserID:     &e.CreatedBy,
		Action:     "task_created",
		Resource:   "tasks",
		ResourceID: &resourceID,
		Details: map[string]any{
			"title": e.Title,
		},
		Severity: SeverityInfo,
	})
	return err
}

func (s *Subscriber) handleTaskCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	resourceID := fmt.Sprintf("%d", e.TaskID)
	_, err := s.service.Record(ctx, Entry{
		UserID:     &e.CompletedBy,
		Action:     "task_completed",
		Resource:   "tasks",
		ResourceID: &resourceID,
		Severity:   SeverityInfo,
	})
	return err
}

func (s *Subscriber) handleBudgetReviewed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.BudgetReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	resourceID := fmt.Sprintf("%d", e.RequestID)
	_, err := s.service.Record(ctx, Entry{
		UserID:     &e.ReviewedBy,
		Action:     "budget_" + e.Outcome,
		Resource:   "budget_requests",
		ResourceID: &resourceID,
		Details: map[string]any{
			"amount_inr": e.AmountINR,
			"outcome":    e.Outcome,
		},
		Severity: SeverityMedium,
	})
	return err
}
