package dto

import "time"

// CreateAllocationRequest persists a decision made on a MatchResult.
type CreateAllocationRequest struct {
	DonorID     string     `json:"donor_id" validate:"required,uuid"`
	RecipientID string     `json:"recipient_id" validate:"required,uuid"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
}

// UpdateAllocationStatusRequest moves an allocation along its lifecycle.
type UpdateAllocationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=proposed accepted scheduled completed cancelled"`
	Notes  string `json:"notes"`
}

// AllocationSearchQuery filters persisted allocations.
type AllocationSearchQuery struct {
	DonorID     string `form:"donor_id" validate:"omitempty,uuid"`
	RecipientID string `form:"recipient_id" validate:"omitempty,uuid"`
	OrganType   string `form:"organ_type" validate:"omitempty,is-organ"`
	Status      string `form:"status"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
