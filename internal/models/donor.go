package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Donor struct {
	BaseModel
	Name      string `gorm:"not null" json:"name"`
	Age       int    `gorm:"not null" json:"age"`
	Gender    string `json:"gender"`
	BloodType string `gorm:"not null" json:"blood_type"`

	// Organs offered, in allocation order. Only the first is matched per call.
	OrgansAvailable pq.StringArray `gorm:"type:text[]" json:"organs_available"`

	// HLA locus -> allele strings (at most ~2 per locus), e.g. {"A": ["A*02:01"]}.
	HLATyping datatypes.JSON `gorm:"type:jsonb" json:"hla_typing"`

	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`

	MedicalHistory string `json:"medical_history"`
	CauseOfDeath   string `json:"cause_of_death"`

	// Explicit cold-ischemia window. When nil the per-organ default applies
	// and no real-time countdown is enforced.
	ColdIschemiaTimeHours *float64   `json:"cold_ischemia_time_hours,omitempty"`
	IschemiaStartedAt     *time.Time `json:"ischemia_started_at,omitempty"`

	Status string `gorm:"default:active" json:"status"`
}

// GetHLATyping returns the donor's HLA typing as a locus -> alleles map.
func (d *Donor) GetHLATyping() map[string][]string {
	typing := map[string][]string{}
	if len(d.HLATyping) > 0 {
		_ = json.Unmarshal(d.HLATyping, &typing)
	}
	return typing
}

// SetHLATyping stores the locus -> alleles map as JSONB.
func (d *Donor) SetHLATyping(typing map[string][]string) {
	data, _ := json.Marshal(typing)
	d.HLATyping = datatypes.JSON(data)
}

// PrimaryOrgan returns the first organ on offer, or "" when the list is empty.
func (d *Donor) PrimaryOrgan() string {
	if len(d.OrgansAvailable) == 0 {
		return ""
	}
	return d.OrgansAvailable[0]
}
