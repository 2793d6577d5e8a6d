package budget

import "errors"

// CreateBudgetRequestDTO is the payload for submitting a budget request.
type CreateBudgetRequestDTO struct {
	AmountINR int64  `json:"amount_inr"`
	Purpose   string `json:"purpose"`
	Category  string `json:"category,omitempty"`
}

func (dto CreateBudgetRequestDTO) Validate() error {
	if dto.AmountINR <= 0 {
		return errors.New("amount_inr must be positive")
	}
	if dto.Purpose == "" {
		return errors.New("purpose is required")
	}
	if len(dto.Purpose) > 500 {
		return errors.New("purpose must be less than 500 characters")
	}
	return nil
}

// RejectBudgetRequestDTO carries the mandatory rejection reason.
type RejectBudgetRequestDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectBudgetRequestDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting a budget request")
	}
	return nil
}
