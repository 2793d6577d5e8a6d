package postgres

import (
	"github.com/reformtrack/reform-management/internal/budget"
	budgetDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/budget"
	"gorm.io/gorm"
)

// BudgetRepository implements the budget.RepositoryAPI interface using GORM.
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(b *budget.BudgetRequest) error {
	model := budget.ToDataModel(b)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	b.ID = model.ID
	return nil
}

func (r *BudgetRepository) GetByID(id int64) (*budget.BudgetRequest, error) {
	var model budgetDatamodel.BudgetRequest
	if err := r.db.First(&model, id).Error; err != nil {
		return nil, err
	}
	return budget.FromDataModel(&model), nil
}

func (r *BudgetRepository) GetByUserID(userID int64, limit, offset int) ([]*budget.BudgetRequest, error) {
	var models []*budgetDatamodel.BudgetRequest
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return budget.FromDataModelSlice(models), nil
}

func (r *BudgetRepository) GetAll(limit, offset int) ([]*budget.BudgetRequest, error) {
	var models []*budgetDatamodel.BudgetRequest
	err := r.db.Order("submitted_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return budget.FromDataModelSlice(models), nil
}

func (r *BudgetRepository) Update(b *budget.BudgetRequest) error {
	return r.db.Save(budget.ToDataModel(b)).Error
}
