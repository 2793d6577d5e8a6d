package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reformtrack/reform-management/internal/audit"
)

func TestAuditService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Service Suite")
}

type mockAuditRepository struct {
	created     []*audit.Entry
	listed      []audit.ListFilter
	entries     []*audit.Entry
	createError error
	listError   error
	nextID      int64
}

func newMockAuditRepository() *mockAuditRepository {
	return &mockAuditRepository{nextID: 1}
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *audit.Entry) (*audit.Entry, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry.ID = m.nextID
	m.nextID++
	m.created = append(m.created, entry)
	return entry, nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	m.listed = append(m.listed, filter)
	return m.entries, nil
}

func serviceLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Audit Service", func() {
	var (
		repo    *mockAuditRepository
		service *audit.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockAuditRepository()
		service = audit.NewService(repo, serviceLogger(), 0)
		ctx = context.Background()
	})

	Describe("Record", func() {
		It("stamps a timestamp when none is set", func() {
			persisted, err := service.Record(ctx, audit.Entry{
				Action:   "task_created",
				Resource: "tasks",
				Severity: audit.SeverityInfo,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted.ID).To(BeNumerically(">", 0))
			Expect(persisted.CreatedAt.IsZero()).To(BeFalse())
		})

		It("defaults an invalid severity to info", func() {
			persisted, err := service.Record(ctx, audit.Entry{
				Action:   "task_created",
				Resource: "tasks",
				Severity: "urgent",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted.Severity).To(Equal(audit.SeverityInfo))
		})

		It("returns the repository error without retrying", func() {
			repo.createError = errors.New("insert failed")
			_, err := service.Record(ctx, audit.Entry{Action: "x", Resource: "y"})
			Expect(err).To(HaveOccurred())
			Expect(repo.created).To(BeEmpty())
		})
	})

	Describe("List", func() {
		It("applies the default limit", func() {
			_, err := service.List(ctx, audit.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listed).To(HaveLen(1))
			Expect(repo.listed[0].Limit).To(Equal(audit.DefaultListLimit))
		})

		It("caps the limit at the maximum", func() {
			_, err := service.List(ctx, audit.ListFilter{Limit: 5000})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listed[0].Limit).To(Equal(audit.MaxListLimit))
		})

		It("passes an explicit limit through", func() {
			_, err := service.List(ctx, audit.ListFilter{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listed[0].Limit).To(Equal(2))
		})

		It("rejects an unknown severity filter", func() {
			_, err := service.List(ctx, audit.ListFilter{Severity: "urgent"})
			Expect(err).To(HaveOccurred())
			Expect(repo.listed).To(BeEmpty())
		})
	})
})
