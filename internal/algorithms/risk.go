package algorithms

import (
	"math"
	"strings"
	"time"

	"organmatch_backend/internal/models"
)

// RiskAssessment is the classifier's output for one accepted match.
type RiskAssessment struct {
	Percentage float64          `json:"risk_percentage"`
	Level      models.RiskLevel `json:"risk_level"`
}

// AssessRisk accumulates the additive risk factors for a donor/recipient
// pair and caps the final percentage at 80. Purely derived, no side effects.
func (e *Engine) AssessRisk(donor *models.Donor, recipient *models.Recipient, organ string, matchScore, hlaScore float64, now time.Time) RiskAssessment {
	op, _ := e.policy.OrganPolicy(organ)
	risk := 0.0

	// Age factors.
	if donor.Age > 60 || recipient.Age > 65 {
		risk += 15
	}
	ageDiff := donor.Age - recipient.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	if ageDiff > 25 {
		risk += 10
	}

	// Match-score factors.
	if matchScore < 50 {
		risk += 20
	} else if matchScore < 70 {
		risk += 10
	}

	// Organ-specific factors.
	if organ == OrganHeart && recipient.UnosStatus != nil && *recipient.UnosStatus == "1A" {
		risk += 5
	}
	if organ == OrganLiver && recipient.MeldScore != nil && *recipient.MeldScore > 25 {
		risk += 10
	}

	// HLA mismatch penalty scaled into the organ's maximum.
	risk += (1 - hlaScore) * op.HLAMismatchRiskMax

	// Size mismatch, recomputed against the same band as the scorer.
	if donor.WeightKg != nil && recipient.WeightKg != nil && *recipient.WeightKg > 0 {
		ratio := *donor.WeightKg / *recipient.WeightKg
		if ratio < op.SizeBand.Min || ratio > op.SizeBand.Max {
			risk += 10
		}
	}

	// Cold-ischemia pressure: only meaningful with an explicit window.
	if donor.ColdIschemiaTimeHours != nil && *donor.ColdIschemiaTimeHours > 0 {
		limit := *donor.ColdIschemiaTimeHours
		elapsed := now.Sub(e.IschemiaStart(donor)).Hours()
		if elapsed > limit {
			risk += 20
		} else if elapsed > 0 {
			risk += elapsed / limit * ischemiaElapsedMax
		}
	}

	risk += e.comorbidityPenalty(donor.MedicalHistory + " " + recipient.MedicalHistory)

	percentage := math.Min(risk, riskCap)
	return RiskAssessment{
		Percentage: math.Round(percentage*100) / 100,
		Level:      riskLevel(percentage),
	}
}

func (e *Engine) comorbidityPenalty(history string) float64 {
	text := strings.ToLower(history)
	total := 0.0
	for _, bucket := range e.policy.Comorbidities {
		if _, found := findKeyword(text, bucket.Keywords); found {
			total += bucket.Points
		}
	}
	return math.Min(total, comorbidityCap)
}

func riskLevel(percentage float64) models.RiskLevel {
	switch {
	case percentage < riskMediumFloor:
		return models.RiskLow
	case percentage < riskHighFloor:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// ClassifyUrgency assigns the urgency tier. Organ-specific rules (UNOS
// status, then liver MELD) take precedence over the generic urgency-score
// fallback.
func (e *Engine) ClassifyUrgency(recipient *models.Recipient, organ string) models.UrgencyLevel {
	if (organ == OrganHeart || organ == OrganLiver) && recipient.UnosStatus != nil {
		switch *recipient.UnosStatus {
		case "1A":
			return models.UrgencyCritical
		case "1B":
			return models.UrgencyUrgent
		}
	}

	if organ == OrganLiver && recipient.MeldScore != nil {
		if *recipient.MeldScore >= 30 {
			return models.UrgencyCritical
		}
		if *recipient.MeldScore >= 20 {
			return models.UrgencyUrgent
		}
	}

	if recipient.UrgencyScore >= 8 {
		return models.UrgencyCritical
	}
	if recipient.UrgencyScore >= 5 {
		return models.UrgencyUrgent
	}
	return models.UrgencyRoutine
}
