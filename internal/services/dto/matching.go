package dto

import (
	"organmatch_backend/internal/algorithms"
)

// ========================
// Matching DTOs
// ========================

// MatchResult is one ranked allocation proposal as returned over the API.
type MatchResult struct {
	RecipientID             string                           `json:"recipient_id"`
	RecipientName           string                           `json:"recipient_name"`
	BloodType               string                           `json:"blood_type"`
	OrganNeeded             string                           `json:"organ_needed"`
	MatchScore              float64                          `json:"match_score"`
	RiskLevel               string                           `json:"risk_level"`
	RiskPercentage          float64                          `json:"risk_percentage"`
	UrgencyLevel            string                           `json:"urgency_level"`
	CompatibilityFactors    *algorithms.CompatibilityFactors `json:"compatibility_factors"`
	RemainingViabilityHours float64                          `json:"remaining_viability_hours"`
}

// CompatibilityResult explains one donor/recipient pairing on demand.
type CompatibilityResult struct {
	DonorID              string                           `json:"donor_id"`
	RecipientID          string                           `json:"recipient_id"`
	Organ                string                           `json:"organ"`
	Compatible           bool                             `json:"compatible"`
	ExclusionReason      string                           `json:"exclusion_reason,omitempty"`
	MatchScore           float64                          `json:"match_score,omitempty"`
	RiskLevel            string                           `json:"risk_level,omitempty"`
	RiskPercentage       float64                          `json:"risk_percentage,omitempty"`
	UrgencyLevel         string                           `json:"urgency_level,omitempty"`
	CompatibilityFactors *algorithms.CompatibilityFactors `json:"compatibility_factors,omitempty"`
}

// ViabilityStatus reports the ischemia clock for a donor's primary organ.
type ViabilityStatus struct {
	DonorID        string  `json:"donor_id"`
	Organ          string  `json:"organ"`
	LimitHours     float64 `json:"limit_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Viable         bool    `json:"viable"`
	// False when the donor has no explicit window and the static default
	// applies.
	CountdownActive bool `json:"countdown_active"`
}

// EligibilityResult is the donor screening verdict.
type EligibilityResult struct {
	DonorID  string `json:"donor_id"`
	Organ    string `json:"organ"`
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// PolicyView is the read-only clinical policy summary exposed to staff.
type PolicyView struct {
	MinViableScore     float64                        `json:"min_viable_score"`
	BloodCompatibility map[string][]string            `json:"blood_compatibility"`
	Organs             map[string]OrganPolicyView     `json:"organs"`
	Comorbidities      []algorithms.ComorbidityBucket `json:"comorbidity_buckets"`
}

type OrganPolicyView struct {
	IschemiaLimitHours float64            `json:"ischemia_limit_hours"`
	DonorAgeMin        int                `json:"donor_age_min"`
	DonorAgeMax        int                `json:"donor_age_max"`
	RecipientMaxAge    int                `json:"recipient_max_age"`
	MaxAgeDifference   int                `json:"max_age_difference"`
	HLAWeights         map[string]float64 `json:"hla_weights"`
	HLAPoints          float64            `json:"hla_points"`
	SizeRatioMin       float64            `json:"size_ratio_min"`
	SizeRatioMax       float64            `json:"size_ratio_max"`
	SizePoints         float64            `json:"size_points"`
}
