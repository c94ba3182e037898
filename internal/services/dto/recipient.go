package dto

import "time"

// CreateRecipientRequest lists a new candidate on the waiting list.
type CreateRecipientRequest struct {
	Name        string `json:"name" validate:"required"`
	Age         int    `json:"age" validate:"min=0,max=120"`
	Gender      string `json:"gender" validate:"omitempty,is-gender"`
	BloodType   string `json:"blood_type" validate:"required,is-blood-type"`
	OrganNeeded string `json:"organ_needed" validate:"required,is-organ"`

	UrgencyScore int     `json:"urgency_score" validate:"min=1,max=10"`
	MeldScore    *int    `json:"meld_score" validate:"omitempty,min=6,max=40"`
	UnosStatus   *string `json:"unos_status" validate:"omitempty,is-unos-status"`

	HLATyping            map[string][]string `json:"hla_typing"`
	UnacceptableAntigens []string            `json:"unacceptable_antigens"`

	HeightCm *float64 `json:"height_cm" validate:"omitempty,min=0"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,min=0"`

	MedicalHistory string     `json:"medical_history"`
	ListedAt       *time.Time `json:"listed_at"`
}

// UpdateRecipientRequest carries partial recipient updates.
type UpdateRecipientRequest struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Gender      *string `json:"gender" validate:"omitempty,is-gender"`
	BloodType   *string `json:"blood_type" validate:"omitempty,is-blood-type"`
	OrganNeeded *string `json:"organ_needed" validate:"omitempty,is-organ"`

	UrgencyScore *int    `json:"urgency_score" validate:"omitempty,min=1,max=10"`
	MeldScore    *int    `json:"meld_score" validate:"omitempty,min=6,max=40"`
	UnosStatus   *string `json:"unos_status" validate:"omitempty,is-unos-status"`

	HLATyping            map[string][]string `json:"hla_typing"`
	UnacceptableAntigens []string            `json:"unacceptable_antigens"`

	HeightCm *float64 `json:"height_cm" validate:"omitempty,min=0"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,min=0"`

	MedicalHistory *string `json:"medical_history"`
	Status         *string `json:"status"`
}

// RecipientSearchQuery filters the waiting list.
type RecipientSearchQuery struct {
	OrganNeeded string `form:"organ_needed" validate:"omitempty,is-organ"`
	BloodType   string `form:"blood_type" validate:"omitempty,is-blood-type"`
	Status      string `form:"status"`
	MinUrgency  *int   `form:"min_urgency" validate:"omitempty,min=1,max=10"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
