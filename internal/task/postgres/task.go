package postgres

import (
	taskDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/task"
	"github.com/reformtrack/reform-management/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements the task.RepositoryAPI interface using GORM.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.RepositoryAPI {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	model := task.ToDataModel(t)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	t.ID = model.ID
	return nil
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var model taskDatamodel.Task
	if err := r.db.First(&model, id).Error; err != nil {
		return nil, err
	}
	return task.FromDataModel(&model), nil
}

func (r *TaskRepository) List(limit, offset int) ([]*task.Task, error) {
	var models []*taskDatamodel.Task
	err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return task.FromDataModelSlice(models), nil
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Save(task.ToDataModel(t)).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&taskDatamodel.Task{}, id).Error
}
