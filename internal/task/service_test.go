package task_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/core/events"
	"github.com/reformtrack/reform-management/internal/task"
)

func TestTaskService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Service Suite")
}

type mockTaskRepository struct {
	tasks       map[int64]*task.Task
	createError error
	nextID      int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[int64]*task.Task), nextID: 1}
}

func (m *mockTaskRepository) Create(t *task.Task) error {
	if m.createError != nil {
		return m.createError
	}
	t.ID = m.nextID
	m.nextID++
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) GetByID(id int64) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskRepository) List(limit, offset int) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTaskRepository) Update(t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) Delete(id int64) error {
	delete(m.tasks, id)
	return nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

var _ = Describe("Task Service", func() {
	var (
		repo    *mockTaskRepository
		bus     *capturingPublisher
		service *task.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockTaskRepository()
		bus = &capturingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = task.NewService(repo, bus, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("creates an open task and publishes a created event", func() {
			created, err := service.Create(ctx, 5, task.CreateTaskDTO{Title: "Draft body camera policy"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Status).To(Equal(task.StatusOpen))
			Expect(created.CreatedBy).To(Equal(int64(5)))
			Expect(bus.types()).To(Equal([]string{events.EventTypeTaskCreated}))
		})

		It("rejects an empty title", func() {
			_, err := service.Create(ctx, 5, task.CreateTaskDTO{})
			Expect(err).To(HaveOccurred())
			Expect(bus.types()).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var existing *task.Task

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ctx, 5, task.CreateTaskDTO{Title: "Review complaint workflow"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies partial changes and leaves other fields alone", func() {
			desc := "Include appeals path"
			updated, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Description: &desc})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Description).To(Equal(desc))
			Expect(updated.Title).To(Equal("Review complaint workflow"))
		})

		It("marks completion and publishes a completed event", func() {
			done := task.StatusDone
			updated, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &done})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(task.StatusDone))
			Expect(updated.CompletedAt).NotTo(BeNil())
			Expect(bus.types()).To(ContainElement(events.EventTypeTaskCompleted))
		})

		It("clears completed_at when a done task is reopened", func() {
			done := task.StatusDone
			_, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &done})
			Expect(err).NotTo(HaveOccurred())

			open := task.StatusOpen
			updated, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &open})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(task.StatusOpen))
			Expect(updated.CompletedAt).To(BeNil())
		})

		It("rejects an unknown status", func() {
			bogus := "archived"
			_, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &bogus})
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for a missing task", func() {
			title := "x"
			_, err := service.Update(ctx, 5, 999, task.UpdateTaskDTO{Title: &title})
			Expect(err).To(Equal(internal.ErrTaskNotFound))
		})

		It("does not publish a completed event when status is unchanged", func() {
			done := task.StatusDone
			_, err := service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &done})
			Expect(err).NotTo(HaveOccurred())

			before := len(bus.types())
			_, err = service.Update(ctx, 5, existing.ID, task.UpdateTaskDTO{Status: &done})
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.types()).To(HaveLen(before))
		})
	})

	Describe("Delete", func() {
		It("removes the task", func() {
			created, err := service.Create(ctx, 5, task.CreateTaskDTO{Title: "Retire legacy case files"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, 5, created.ID)).To(Succeed())
			_, err = service.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrTaskNotFound))
		})

		It("returns not found for a missing task", func() {
			Expect(service.Delete(ctx, 5, 404)).To(Equal(internal.ErrTaskNotFound))
		})
	})

	Describe("due dates", func() {
		It("stores the due date on creation", func() {
			due := time.Now().Add(72 * time.Hour)
			created, err := service.Create(ctx, 5, task.CreateTaskDTO{Title: "Publish use-of-force stats", DueDate: &due})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.DueDate).NotTo(BeNil())
		})
	})
})
