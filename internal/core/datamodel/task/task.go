package task

import "time"

type Task struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status;not null;default:open"`
	CreatedBy   int64      `gorm:"column:created_by;not null;index"`
	AssigneeID  *int64     `gorm:"column:assignee_id;index"`
	DueDate     *time.Time `gorm:"column:due_date;type:date"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Task) TableName() string {
	return "tasks"
}
