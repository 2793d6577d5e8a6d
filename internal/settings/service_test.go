package settings_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/audit"
	"github.com/reformtrack/reform-management/internal/settings"
)

func TestSettingsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Service Suite")
}

type mockSettingsRepository struct {
	byKey map[string]*settings.Setting
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{byKey: make(map[string]*settings.Setting)}
}

func (m *mockSettingsRepository) GetByKey(key string) (*settings.Setting, error) {
	s, ok := m.byKey[key]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *s
	return &copied, nil
}

func (m *mockSettingsRepository) List() ([]*settings.Setting, error) {
	out := make([]*settings.Setting, 0, len(m.byKey))
	for _, s := range m.byKey {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSettingsRepository) Upsert(s *settings.Setting) error {
	m.byKey[s.Key] = s
	return nil
}

type mockRecorder struct {
	entries []audit.Entry
}

func (m *mockRecorder) Record(ctx context.Context, entry audit.Entry) (*audit.Entry, error) {
	m.entries = append(m.entries, entry)
	return &entry, nil
}

var _ = Describe("Settings Service", func() {
	const actorID = int64(1)

	var (
		repo     *mockSettingsRepository
		recorder *mockRecorder
		service  *settings.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		repo = newMockSettingsRepository()
		recorder = &mockRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = settings.NewService(repo, recorder, logger)
		ctx = context.Background()
	})

	Describe("Upsert", func() {
		It("creates a setting and audits the write", func() {
			written, err := service.Upsert(ctx, actorID, "tasks.default_due_days", settings.UpsertSettingDTO{Value: "14"})
			Expect(err).NotTo(HaveOccurred())
			Expect(written.Value).To(Equal("14"))

			Expect(recorder.entries).To(HaveLen(1))
			entry := recorder.entries[0]
			Expect(entry.Action).To(Equal(audit.ActionUpdateSetting))
			Expect(entry.Details["new_value"]).To(Equal("14"))
			Expect(entry.Details).NotTo(HaveKey("previous_value"))
		})

		It("records the previous value on overwrite", func() {
			_, err := service.Upsert(ctx, actorID, "ai.enabled", settings.UpsertSettingDTO{Value: "false"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Upsert(ctx, actorID, "ai.enabled", settings.UpsertSettingDTO{Value: "true"})
			Expect(err).NotTo(HaveOccurred())

			entry := recorder.entries[1]
			Expect(entry.Details["previous_value"]).To(Equal("false"))
			Expect(entry.Details["new_value"]).To(Equal("true"))
		})

		It("rejects malformed keys", func() {
			_, err := service.Upsert(ctx, actorID, "Tasks Default", settings.UpsertSettingDTO{Value: "x"})
			Expect(err).To(HaveOccurred())
			Expect(recorder.entries).To(BeEmpty())
		})
	})

	Describe("GetByKey", func() {
		It("returns not found for a missing key", func() {
			_, err := service.GetByKey("reports.retention_days")
			Expect(err).To(Equal(internal.ErrSettingNotFound))
		})
	})
})
