package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"organmatch_backend/internal/models"
)

var riskNow = time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

func TestAssessRisk_LowRiskBaseline(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney")
	r := testRecipient("kidney")

	risk := e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow)

	assert.Equal(t, 0.0, risk.Percentage)
	assert.Equal(t, models.RiskLow, risk.Level)
}

func TestAssessRisk_AgeFactors(t *testing.T) {
	e := NewEngine()

	d := testDonor("kidney", func(d *models.Donor) { d.Age = 61 })
	r := testRecipient("kidney", func(r *models.Recipient) { r.Age = 50 })
	risk := e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow)
	assert.Equal(t, 15.0, risk.Percentage, "donor over 60")

	d = testDonor("liver", func(d *models.Donor) { d.Age = 66 })
	r = testRecipient("liver", func(r *models.Recipient) { r.Age = 40 })
	risk = e.AssessRisk(d, &r, "liver", 85, 1.0, riskNow)
	assert.Equal(t, 25.0, risk.Percentage, "donor over 60 plus age gap over 25")
}

func TestAssessRisk_MatchScoreFactors(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney")
	r := testRecipient("kidney")

	assert.Equal(t, 20.0, e.AssessRisk(d, &r, "kidney", 49, 1.0, riskNow).Percentage)
	assert.Equal(t, 10.0, e.AssessRisk(d, &r, "kidney", 69, 1.0, riskNow).Percentage)
	assert.Equal(t, 0.0, e.AssessRisk(d, &r, "kidney", 70, 1.0, riskNow).Percentage)
}

func TestAssessRisk_OrganSpecificFactors(t *testing.T) {
	e := NewEngine()

	d := testDonor("heart")
	r := testRecipient("heart", func(r *models.Recipient) { r.UnosStatus = strPtr("1A") })
	assert.Equal(t, 5.0, e.AssessRisk(d, &r, "heart", 85, 1.0, riskNow).Percentage)

	d = testDonor("liver")
	r = testRecipient("liver", func(r *models.Recipient) { r.MeldScore = intPtr(26) })
	assert.Equal(t, 10.0, e.AssessRisk(d, &r, "liver", 85, 1.0, riskNow).Percentage)
}

func TestAssessRisk_HLAMismatchPenalty(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney")
	r := testRecipient("kidney")

	// (1 - 0) * 20 for kidney.
	assert.Equal(t, 20.0, e.AssessRisk(d, &r, "kidney", 85, 0.0, riskNow).Percentage)
	// (1 - 0.5) * 15 for heart.
	d = testDonor("heart")
	r = testRecipient("heart")
	assert.Equal(t, 7.5, e.AssessRisk(d, &r, "heart", 85, 0.5, riskNow).Percentage)
}

func TestAssessRisk_SizeMismatchPenalty(t *testing.T) {
	e := NewEngine()
	d := testDonor("heart", func(d *models.Donor) { d.WeightKg = floatPtr(140) })
	r := testRecipient("heart", func(r *models.Recipient) { r.WeightKg = floatPtr(100) })

	assert.Equal(t, 10.0, e.AssessRisk(d, &r, "heart", 85, 1.0, riskNow).Percentage)
}

func TestAssessRisk_IschemiaPenalty(t *testing.T) {
	e := NewEngine()

	// No explicit window: no penalty regardless of record age.
	d := testDonor("kidney")
	r := testRecipient("kidney")
	assert.Equal(t, 0.0, e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow.Add(100*time.Hour)).Percentage)

	// Half the window elapsed: proportional penalty, half of 8.
	start := riskNow.Add(-5 * time.Hour)
	d = testDonor("kidney", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(10)
		d.IschemiaStartedAt = &start
	})
	assert.Equal(t, 4.0, e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow).Percentage)

	// Window exceeded: flat 20.
	late := riskNow.Add(-11 * time.Hour)
	d.IschemiaStartedAt = &late
	assert.Equal(t, 20.0, e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow).Percentage)
}

func TestAssessRisk_ComorbidityBucketsCapAt15(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) {
		d.MedicalHistory = "diabetes, hypertension, coronary artery findings, prior sepsis"
	})
	r := testRecipient("kidney", func(r *models.Recipient) {
		r.MedicalHistory = "history of cancer, heavy smoker, alcohol abuse"
	})

	// Buckets sum to 3+3+4+4+4+2+2 = 22, capped at 15.
	assert.Equal(t, 15.0, e.AssessRisk(d, &r, "kidney", 85, 1.0, riskNow).Percentage)
}

func TestAssessRisk_CappedAt80(t *testing.T) {
	e := NewEngine()
	start := riskNow.Add(-20 * time.Hour)
	d := testDonor("kidney", func(d *models.Donor) {
		d.Age = 68
		d.WeightKg = floatPtr(150)
		d.MedicalHistory = "diabetes hypertension sepsis cancer smoker"
		d.ColdIschemiaTimeHours = floatPtr(10)
		d.IschemiaStartedAt = &start
	})
	r := testRecipient("kidney", func(r *models.Recipient) {
		r.Age = 30
		r.WeightKg = floatPtr(50)
	})

	risk := e.AssessRisk(d, &r, "kidney", 35, 0.0, riskNow)
	assert.Equal(t, 80.0, risk.Percentage)
	assert.Equal(t, models.RiskHigh, risk.Level)
}

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, models.RiskLow, riskLevel(24.9))
	assert.Equal(t, models.RiskMedium, riskLevel(25))
	assert.Equal(t, models.RiskMedium, riskLevel(49.9))
	assert.Equal(t, models.RiskHigh, riskLevel(50))
}

func TestClassifyUrgency(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name  string
		organ string
		r     models.Recipient
		want  models.UrgencyLevel
	}{
		{"heart UNOS 1A", "heart", testRecipient("heart", func(r *models.Recipient) {
			r.UnosStatus = strPtr("1A")
			r.UrgencyScore = 1
		}), models.UrgencyCritical},
		{"liver UNOS 1B", "liver", testRecipient("liver", func(r *models.Recipient) {
			r.UnosStatus = strPtr("1B")
		}), models.UrgencyUrgent},
		{"UNOS ignored for kidney", "kidney", testRecipient("kidney", func(r *models.Recipient) {
			r.UnosStatus = strPtr("1A")
			r.UrgencyScore = 1
		}), models.UrgencyRoutine},
		{"UNOS checked before MELD", "liver", testRecipient("liver", func(r *models.Recipient) {
			r.UnosStatus = strPtr("1A")
			r.MeldScore = intPtr(22)
		}), models.UrgencyCritical},
		{"liver MELD 30", "liver", testRecipient("liver", func(r *models.Recipient) {
			r.MeldScore = intPtr(30)
			r.UrgencyScore = 1
		}), models.UrgencyCritical},
		{"liver MELD 20", "liver", testRecipient("liver", func(r *models.Recipient) {
			r.MeldScore = intPtr(20)
			r.UrgencyScore = 1
		}), models.UrgencyUrgent},
		{"liver MELD below 20 falls back", "liver", testRecipient("liver", func(r *models.Recipient) {
			r.MeldScore = intPtr(15)
			r.UrgencyScore = 9
		}), models.UrgencyCritical},
		{"generic urgency 8", "kidney", testRecipient("kidney", func(r *models.Recipient) {
			r.UrgencyScore = 8
		}), models.UrgencyCritical},
		{"generic urgency 5", "kidney", testRecipient("kidney", func(r *models.Recipient) {
			r.UrgencyScore = 5
		}), models.UrgencyUrgent},
		{"routine", "kidney", testRecipient("kidney", func(r *models.Recipient) {
			r.UrgencyScore = 4
		}), models.UrgencyRoutine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ClassifyUrgency(&tt.r, tt.organ))
		})
	}
}
