package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"organmatch_backend/internal/models"
)

func testRecipient(organ string, mutate ...func(*models.Recipient)) models.Recipient {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	r := models.Recipient{
		BaseModel: models.BaseModel{
			ID:        "recipient-1",
			CreatedAt: created,
			UpdatedAt: created,
		},
		Name:         "Test Recipient",
		Age:          38,
		Gender:       "male",
		BloodType:    "O+",
		OrganNeeded:  organ,
		UrgencyScore: 5,
		Status:       string(models.RecipientStatusActive),
	}
	for _, m := range mutate {
		m(&r)
	}
	return r
}

func TestBloodCompatible_UniversalDonor(t *testing.T) {
	e := NewEngine()

	for _, recipientType := range models.BloodTypes {
		assert.True(t, e.BloodCompatible("O-", recipientType),
			"O- should be able to give to %s", recipientType)
	}
}

func TestBloodCompatible_UniversalRecipient(t *testing.T) {
	e := NewEngine()

	for _, donorType := range models.BloodTypes {
		assert.True(t, e.BloodCompatible(donorType, "AB+"),
			"AB+ should be able to receive from %s", donorType)
	}
}

func TestBloodCompatible_Matrix(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		donor      string
		recipient  string
		compatible bool
	}{
		{"A+", "O+", false},
		{"A+", "A+", true},
		{"A-", "A+", true},
		{"A+", "A-", false},
		{"B+", "AB-", false},
		{"B-", "AB-", true},
		{"O+", "O-", false},
		{"AB+", "AB+", true},
		{"AB+", "A+", false},
		{"unknown", "A+", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.compatible, e.BloodCompatible(tt.donor, tt.recipient),
			"donor %s -> recipient %s", tt.donor, tt.recipient)
	}
}

func TestCheckDonorEligibility_AgeRanges(t *testing.T) {
	e := NewEngine()

	eligible, reason := e.CheckDonorEligibility(testDonor("kidney", func(d *models.Donor) { d.Age = 80 }), "kidney")
	assert.False(t, eligible)
	assert.Contains(t, reason, "18-70", "reason should cite the age range")

	eligible, _ = e.CheckDonorEligibility(testDonor("kidney", func(d *models.Donor) { d.Age = 17 }), "kidney")
	assert.False(t, eligible)

	eligible, _ = e.CheckDonorEligibility(testDonor("heart", func(d *models.Donor) { d.Age = 66 }), "heart")
	assert.False(t, eligible)

	eligible, reason = e.CheckDonorEligibility(testDonor("heart", func(d *models.Donor) { d.Age = 12 }), "heart")
	assert.True(t, eligible, "pediatric heart donors allowed: %s", reason)
}

func TestCheckDonorEligibility_Keywords(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name    string
		organ   string
		history string
		cause   string
		ok      bool
	}{
		{"clean history", "kidney", "appendectomy 2019", "trauma", true},
		{"general exclusion in history", "kidney", "treated for Malignancy in 2020", "", false},
		{"general exclusion in cause of death", "heart", "", "death following active infection", false},
		{"kidney-specific exclusion", "kidney", "polycystic kidney disease", "", false},
		{"heart-specific exclusion", "heart", "dilated cardiomyopathy", "", false},
		{"liver-specific exclusion", "liver", "alcoholic cirrhosis", "", false},
		{"organ keyword on other organ", "heart", "polycystic kidney disease", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDonor(tt.organ, func(d *models.Donor) {
				d.MedicalHistory = tt.history
				d.CauseOfDeath = tt.cause
			})
			ok, reason := e.CheckDonorEligibility(d, tt.organ)
			assert.Equal(t, tt.ok, ok, "reason: %s", reason)
			if !tt.ok {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestCheckDonorEligibility_UnknownOrgan(t *testing.T) {
	e := NewEngine()

	ok, reason := e.CheckDonorEligibility(testDonor("pancreas"), "pancreas")
	assert.False(t, ok)
	assert.Contains(t, reason, "pancreas")
}

func TestCheckRecipientEligibility(t *testing.T) {
	e := NewEngine()

	ok, reason := e.CheckRecipientEligibility(&models.Recipient{Age: 76, Status: "active"}, "kidney")
	assert.False(t, ok)
	assert.Contains(t, reason, "maximum")

	r := testRecipient("kidney", func(r *models.Recipient) {
		r.MedicalHistory = "non-compliance with dialysis noted"
	})
	ok, reason = e.CheckRecipientEligibility(&r, "kidney")
	assert.False(t, ok)
	assert.Contains(t, reason, "dialysis")

	r = testRecipient("kidney")
	ok, _ = e.CheckRecipientEligibility(&r, "kidney")
	assert.True(t, ok)
}

func TestCheckAgeDifference(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		organ        string
		donorAge     int
		recipientAge int
		ok           bool
	}{
		{"kidney", 40, 60, true},
		{"kidney", 40, 61, false},
		{"heart", 30, 40, true},
		{"heart", 30, 41, false},
		{"liver", 30, 55, true},
		{"liver", 30, 56, false},
		{"kidney", 60, 40, true}, // symmetric
	}
	for _, tt := range tests {
		d := testDonor(tt.organ, func(d *models.Donor) { d.Age = tt.donorAge })
		r := testRecipient(tt.organ, func(r *models.Recipient) { r.Age = tt.recipientAge })
		ok, _ := e.CheckAgeDifference(d, &r, tt.organ)
		assert.Equal(t, tt.ok, ok, "%s donor %d recipient %d", tt.organ, tt.donorAge, tt.recipientAge)
	}
}

func TestCrossmatchCompatible(t *testing.T) {
	e := NewEngine()

	d := testDonor("kidney", func(d *models.Donor) {
		d.SetHLATyping(map[string][]string{
			"A":    {"A*02:01", "A*24:02"},
			"DRB1": {"DRB1*15:01"},
		})
	})

	// No declared list: passes.
	r := testRecipient("kidney")
	ok, _ := e.CrossmatchCompatible(d, &r, "kidney")
	assert.True(t, ok)

	// Donor antigen in the unacceptable list: hard exclusion.
	r = testRecipient("kidney", func(r *models.Recipient) {
		r.UnacceptableAntigens = []string{"DR15"}
	})
	ok, reason := e.CrossmatchCompatible(d, &r, "kidney")
	assert.False(t, ok)
	assert.Contains(t, reason, "DR15")

	// Unrelated antigens: passes.
	r = testRecipient("kidney", func(r *models.Recipient) {
		r.UnacceptableAntigens = []string{"B7", "DR4"}
	})
	ok, _ = e.CrossmatchCompatible(d, &r, "kidney")
	assert.True(t, ok)

	// List entries in molecular form still veto the matching donor antigen.
	r = testRecipient("kidney", func(r *models.Recipient) {
		r.UnacceptableAntigens = []string{"A*02:01"}
	})
	ok, reason = e.CrossmatchCompatible(d, &r, "kidney")
	assert.False(t, ok)
	assert.Contains(t, reason, "A2")
}
