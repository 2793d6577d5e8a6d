package budget

import "time"

type BudgetRequest struct {
	ID          int64      `gorm:"primaryKey"`
	UserID      int64      `gorm:"column:user_id;not null;index"`
	AmountINR   int64      `gorm:"column:amount_inr;not null"`
	Purpose     string     `gorm:"column:purpose;not null"`
	Category    string     `gorm:"column:category"`
	Status      string     `gorm:"column:status;not null;default:pending_approval"`
	Reason      *string    `gorm:"column:reason"`
	ReviewedBy  *int64     `gorm:"column:reviewed_by"`
	SubmittedAt time.Time  `gorm:"column:submitted_at;default:now()"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (BudgetRequest) TableName() string {
	return "budget_requests"
}
