package models

import (
	"time"

	"gorm.io/datatypes"
)

// Allocation records a match the clinical team decided to act on. The engine
// itself never writes these; the service layer persists them on request.
type Allocation struct {
	BaseModel
	DonorID     string `gorm:"type:uuid;not null;index" json:"donor_id"`
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`
	OrganType   string `gorm:"not null" json:"organ_type"`

	MatchScore     float64 `json:"match_score"`
	RiskLevel      string  `json:"risk_level"`
	RiskPercentage float64 `json:"risk_percentage"`
	UrgencyLevel   string  `json:"urgency_level"`

	// Factor breakdown captured at decision time.
	CompatibilityFactors datatypes.JSON `gorm:"type:jsonb" json:"compatibility_factors"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `gorm:"default:proposed" json:"status"`
	Notes       string     `json:"notes"`

	Donor     *Donor     `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Recipient *Recipient `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
