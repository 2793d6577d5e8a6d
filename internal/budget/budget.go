package budget

import (
	"time"

	budgetDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/budget"
)

const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// BudgetRequest is a funding request tied to a reform initiative.
type BudgetRequest struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	AmountINR   int64      `json:"amount_inr"`
	Purpose     string     `json:"purpose"`
	Category    string     `json:"category,omitempty"`
	Status      string     `json:"status"`
	Reason      *string    `json:"reason,omitempty"`
	ReviewedBy  *int64     `json:"reviewed_by,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (b *BudgetRequest) CanBeReviewed() bool {
	return b.Status == StatusPendingApproval
}

func (b *BudgetRequest) Approve(reviewerID int64) {
	now := time.Now()
	b.Status = StatusApproved
	b.ReviewedBy = &reviewerID
	b.ProcessedAt = &now
	b.UpdatedAt = now
}

func (b *BudgetRequest) Reject(reviewerID int64, reason string) {
	now := time.Now()
	b.Status = StatusRejected
	b.ReviewedBy = &reviewerID
	b.Reason = &reason
	b.ProcessedAt = &now
	b.UpdatedAt = now
}

func ToDataModel(b *BudgetRequest) *budgetDatamodel.BudgetRequest {
	return &budgetDatamodel.BudgetRequest{
		ID:          b.ID,
		UserID:      b.UserID,
		AmountINR:   b.AmountINR,
		Purpose:     b.Purpose,
		Category:    b.Category,
		Status:      b.Status,
		Reason:      b.Reason,
		ReviewedBy:  b.ReviewedBy,
		SubmittedAt: b.SubmittedAt,
		ProcessedAt: b.ProcessedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromDataModel(m *budgetDatamodel.BudgetRequest) *BudgetRequest {
	return &BudgetRequest{
		ID:          m.ID,
		UserID:      m.UserID,
		AmountINR:   m.AmountINR,
		Purpose:     m.Purpose,
		Category:    m.Category,
		Status:      m.Status,
		Reason:      m.Reason,
		ReviewedBy:  m.ReviewedBy,
		SubmittedAt: m.SubmittedAt,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*budgetDatamodel.BudgetRequest) []*BudgetRequest {
	result := make([]*BudgetRequest, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
