package postgres

import (
	"context"

	"github.com/reformtrack/reform-management/internal/audit"
	auditDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository implements audit.RepositoryAPI using GORM. It exposes
// Create and List only; the audit_logs table has no mutation path.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *audit.Entry) (*audit.Entry, error) {
	model, err := audit.ToDataModel(entry)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}

	return audit.FromDataModel(model), nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, error) {
	query := r.db.WithContext(ctx).Model(&auditDatamodel.AuditLog{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", string(filter.Severity))
	}

	var models []*auditDatamodel.AuditLog
	// id DESC breaks ties between entries sharing a timestamp
	err := query.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return audit.FromDataModelSlice(models), nil
}
