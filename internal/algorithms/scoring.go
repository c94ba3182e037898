package algorithms

import (
	"fmt"
	"math"

	"organmatch_backend/internal/models"
)

// CompatibilityFactors is the structured breakdown returned with every score.
type CompatibilityFactors struct {
	BloodTypeCompatible bool    `json:"blood_type_compatible"`
	HLACompatibility    float64 `json:"hla_compatibility"`
	AgeCompatible       bool    `json:"age_compatible"`
	SizeCompatible      bool    `json:"size_compatible"`
	GenderCompatible    bool    `json:"gender_compatible"`
	UrgencyBonus        float64 `json:"urgency_bonus"`
	// Always 0 under current policy: the time-on-list bonus was folded into
	// the urgency bonus. The slot stays so the output contract is stable.
	TimeOnListBonus float64 `json:"time_on_list_bonus"`
}

// ScoreMatch computes the 0-100 match quality for one donor/recipient/organ
// triple plus its factor breakdown. Age compatibility is a hard gate upstream,
// so it is recorded as true for every pair that reaches scoring.
func (e *Engine) ScoreMatch(donor *models.Donor, recipient *models.Recipient, organ string) (float64, *CompatibilityFactors, error) {
	op, ok := e.policy.OrganPolicy(organ)
	if !ok {
		return 0, nil, fmt.Errorf("no allocation policy for organ %q", organ)
	}

	factors := &CompatibilityFactors{AgeCompatible: true}
	score := 0.0

	// ABO (30 points).
	factors.BloodTypeCompatible = e.BloodCompatible(donor.BloodType, recipient.BloodType)
	if factors.BloodTypeCompatible {
		score += bloodTypePoints
	}

	// Urgency bonus (up to 15 points).
	factors.UrgencyBonus = urgencyBonus(recipient.UrgencyScore)
	score += factors.UrgencyBonus

	// HLA (organ-specific allocation, 35/25/10 points).
	factors.HLACompatibility = e.HLAScore(donor.GetHLATyping(), recipient.GetHLATyping(), organ)
	score += factors.HLACompatibility * op.HLAPoints

	// Size band (organ-specific points; neutral-compatible when a weight is
	// missing).
	factors.SizeCompatible = sizeCompatible(donor.WeightKg, recipient.WeightKg, op.SizeBand)
	if factors.SizeCompatible {
		score += op.SizeBand.Points
	}

	// Gender bonus (5 points, never a hard exclusion).
	factors.GenderCompatible = genderCompatible(donor.Gender, recipient.Gender, organ)
	if factors.GenderCompatible {
		score += genderPoints
	}

	// Liver-only MELD bonus (up to 20 points).
	if organ == OrganLiver && recipient.MeldScore != nil {
		score += meldBonus(*recipient.MeldScore)
	}

	return math.Round(score*100) / 100, factors, nil
}

func urgencyBonus(urgencyScore int) float64 {
	bonus := float64(urgencyScore) / 10 * urgencyMaxPoints
	if bonus > urgencyMaxPoints {
		bonus = urgencyMaxPoints
	}
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

func meldBonus(meld int) float64 {
	bonus := float64(meld) / 40 * meldMaxPoints
	if bonus > meldMaxPoints {
		bonus = meldMaxPoints
	}
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

func sizeCompatible(donorWeight, recipientWeight *float64, band SizeBand) bool {
	if donorWeight == nil || recipientWeight == nil || *recipientWeight <= 0 {
		return true
	}
	ratio := *donorWeight / *recipientWeight
	return ratio >= band.Min && ratio <= band.Max
}

// genderCompatible awards the bonus for same-gender pairs; for hearts a
// female donor into a male recipient is also conventionally acceptable.
func genderCompatible(donorGender, recipientGender, organ string) bool {
	if donorGender == "" || recipientGender == "" {
		return false
	}
	if donorGender == recipientGender {
		return true
	}
	if organ == OrganHeart && donorGender == "female" && recipientGender == "male" {
		return true
	}
	return false
}
