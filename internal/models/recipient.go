package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Recipient struct {
	BaseModel
	Name      string `gorm:"not null" json:"name"`
	Age       int    `gorm:"not null" json:"age"`
	Gender    string `json:"gender"`
	BloodType string `gorm:"not null" json:"blood_type"`

	OrganNeeded string `gorm:"not null;index" json:"organ_needed"`

	// Generic waiting-list urgency, 1-10.
	UrgencyScore int `gorm:"default:1" json:"urgency_score"`

	// Liver candidates only, 6-40.
	MeldScore *int `json:"meld_score,omitempty"`

	// Heart/liver priority code, e.g. "1A", "1B", "2".
	UnosStatus *string `json:"unos_status,omitempty"`

	HLATyping datatypes.JSON `gorm:"type:jsonb" json:"hla_typing"`

	// Antigens the recipient cannot tolerate (virtual crossmatch).
	UnacceptableAntigens pq.StringArray `gorm:"type:text[]" json:"unacceptable_antigens"`

	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`

	MedicalHistory string `json:"medical_history"`

	Status string `gorm:"default:active;index" json:"status"`

	ListedAt *time.Time `json:"listed_at,omitempty"`
}

// GetHLATyping returns the recipient's HLA typing as a locus -> alleles map.
func (r *Recipient) GetHLATyping() map[string][]string {
	typing := map[string][]string{}
	if len(r.HLATyping) > 0 {
		_ = json.Unmarshal(r.HLATyping, &typing)
	}
	return typing
}

// SetHLATyping stores the locus -> alleles map as JSONB.
func (r *Recipient) SetHLATyping(typing map[string][]string) {
	data, _ := json.Marshal(typing)
	r.HLATyping = datatypes.JSON(data)
}

// TimeOnList reports how long the recipient has been waiting, preferring the
// explicit listing timestamp over the record creation time.
func (r *Recipient) TimeOnList(now time.Time) time.Duration {
	start := r.CreatedAt
	if r.ListedAt != nil {
		start = *r.ListedAt
	}
	if start.IsZero() || start.After(now) {
		return 0
	}
	return now.Sub(start)
}
