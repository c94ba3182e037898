package dto

import "time"

// CreateDonorRequest registers a new donor record.
type CreateDonorRequest struct {
	Name            string   `json:"name" validate:"required"`
	Age             int      `json:"age" validate:"min=0,max=120"`
	Gender          string   `json:"gender" validate:"omitempty,is-gender"`
	BloodType       string   `json:"blood_type" validate:"required,is-blood-type"`
	OrgansAvailable []string `json:"organs_available" validate:"required,min=1,dive,is-organ"`

	HLATyping map[string][]string `json:"hla_typing"`

	HeightCm *float64 `json:"height_cm" validate:"omitempty,min=0"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,min=0"`

	MedicalHistory string `json:"medical_history"`
	CauseOfDeath   string `json:"cause_of_death"`

	ColdIschemiaTimeHours *float64   `json:"cold_ischemia_time_hours" validate:"omitempty,min=0"`
	IschemiaStartedAt     *time.Time `json:"ischemia_started_at"`
}

// UpdateDonorRequest carries partial donor updates.
type UpdateDonorRequest struct {
	Name            *string  `json:"name"`
	Age             *int     `json:"age" validate:"omitempty,min=0,max=120"`
	Gender          *string  `json:"gender" validate:"omitempty,is-gender"`
	BloodType       *string  `json:"blood_type" validate:"omitempty,is-blood-type"`
	OrgansAvailable []string `json:"organs_available" validate:"omitempty,dive,is-organ"`

	HLATyping map[string][]string `json:"hla_typing"`

	HeightCm *float64 `json:"height_cm" validate:"omitempty,min=0"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,min=0"`

	MedicalHistory *string `json:"medical_history"`
	CauseOfDeath   *string `json:"cause_of_death"`

	ColdIschemiaTimeHours *float64   `json:"cold_ischemia_time_hours" validate:"omitempty,min=0"`
	IschemiaStartedAt     *time.Time `json:"ischemia_started_at"`

	Status *string `json:"status"`
}
