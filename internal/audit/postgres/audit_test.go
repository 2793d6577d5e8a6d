package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/reformtrack/reform-management/internal/audit"
)

func TestAuditRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Repository Suite")
}

type SQLiteAuditLog struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     *int64    `gorm:"column:user_id"`
	Action     string    `gorm:"column:action;not null"`
	Resource   string    `gorm:"column:resource;not null"`
	ResourceID *string   `gorm:"column:resource_id"`
	Details    string    `gorm:"column:details"`
	Severity   string    `gorm:"column:severity;not null"`
	IPAddress  string    `gorm:"column:ip_address"`
	UserAgent  string    `gorm:"column:user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SQLiteAuditLog) TableName() string {
	return "audit_logs"
}

var _ = Describe("AuditRepository", func() {
	var (
		db   *gorm.DB
		repo audit.RepositoryAPI
		ctx  context.Context
	)

	record := func(userID int64, action string, severity audit.Severity, at time.Time) *audit.Entry {
		entry, err := repo.Create(ctx, &audit.Entry{
			UserID:    &userID,
			Action:    action,
			Resource:  "tasks",
			Details:   map[string]any{"permission": "tasks:create"},
			Severity:  severity,
			CreatedAt: at,
		})
		Expect(err).NotTo(HaveOccurred())
		return entry
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAuditLog{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAuditRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("persists an entry with serialized details", func() {
			entry := record(1, "access_denied", audit.SeverityMedium, time.Now())
			Expect(entry.ID).To(BeNumerically(">", 0))

			got, err := repo.List(ctx, audit.ListFilter{Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Details["permission"]).To(Equal("tasks:create"))
		})

		It("accepts entries without a user, for system actions", func() {
			_, err := repo.Create(ctx, &audit.Entry{
				Action:    "role_defaults_installed",
				Resource:  "roles",
				Severity:  audit.SeverityInfo,
				CreatedAt: time.Now(),
			})
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.List(ctx, audit.ListFilter{Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got[0].UserID).To(BeNil())
		})
	})

	Describe("List", func() {
		base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		BeforeEach(func() {
			record(1, "access_denied", audit.SeverityMedium, base)
			record(1, "permission_granted", audit.SeverityInfo, base.Add(1*time.Minute))
			record(2, "access_denied", audit.SeverityMedium, base.Add(2*time.Minute))
			record(2, "security_level_denied", audit.SeverityHigh, base.Add(3*time.Minute))
			record(3, "update_user_role", audit.SeverityHigh, base.Add(4*time.Minute))
		})

		It("returns entries newest first", func() {
			got, err := repo.List(ctx, audit.ListFilter{Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(5))
			Expect(got[0].Action).To(Equal("update_user_role"))
			Expect(got[4].Action).To(Equal("access_denied"))
			for i := 1; i < len(got); i++ {
				Expect(got[i-1].CreatedAt.Before(got[i].CreatedAt)).To(BeFalse())
			}
		})

		It("honors the limit while keeping newest-first order", func() {
			got, err := repo.List(ctx, audit.ListFilter{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			Expect(got[0].Action).To(Equal("update_user_role"))
			Expect(got[1].Action).To(Equal("security_level_denied"))
		})

		It("filters by user", func() {
			userID := int64(2)
			got, err := repo.List(ctx, audit.ListFilter{UserID: &userID, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			for _, e := range got {
				Expect(*e.UserID).To(Equal(userID))
			}
		})

		It("filters by action", func() {
			got, err := repo.List(ctx, audit.ListFilter{Action: "access_denied", Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
		})

		It("filters by severity", func() {
			got, err := repo.List(ctx, audit.ListFilter{Severity: audit.SeverityHigh, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
		})

		It("combines filters", func() {
			userID := int64(2)
			got, err := repo.List(ctx, audit.ListFilter{UserID: &userID, Severity: audit.SeverityHigh, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Action).To(Equal("security_level_denied"))
		})

		It("breaks ties on shared timestamps with the higher id first", func() {
			record(9, "first_at_shared_ts", audit.SeverityInfo, base.Add(10*time.Minute))
			record(9, "second_at_shared_ts", audit.SeverityInfo, base.Add(10*time.Minute))

			got, err := repo.List(ctx, audit.ListFilter{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(got[0].Action).To(Equal("second_at_shared_ts"))
			Expect(got[1].Action).To(Equal("first_at_shared_ts"))
		})
	})
})
