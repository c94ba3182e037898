package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"organmatch_backend/internal/models"
)

func testDonor(organ string, mutate ...func(*models.Donor)) *models.Donor {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	d := &models.Donor{
		BaseModel: models.BaseModel{
			ID:        "donor-1",
			CreatedAt: created,
			UpdatedAt: created,
		},
		Name:            "Test Donor",
		Age:             40,
		Gender:          "male",
		BloodType:       "O-",
		OrgansAvailable: []string{organ},
		Status:          string(models.DonorStatusActive),
	}
	for _, m := range mutate {
		m(d)
	}
	return d
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestLimitHours_Defaults(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, 24.0, e.LimitHours(testDonor("kidney"), "kidney"))
	assert.Equal(t, 6.0, e.LimitHours(testDonor("heart"), "heart"))
	assert.Equal(t, 12.0, e.LimitHours(testDonor("liver"), "liver"))
}

func TestLimitHours_ExplicitWindowWins(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(18)
	})

	assert.Equal(t, 18.0, e.LimitHours(d, "kidney"))
}

func TestRemainingHours_NoExplicitWindowIsStatic(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney")

	// Clock treated as not started: the default is reported even far in the
	// future.
	now := d.CreatedAt.Add(100 * time.Hour)
	assert.Equal(t, 24.0, e.RemainingHours(d, "kidney", now))
	assert.True(t, e.IsViableNow(d, "kidney", now))
}

func TestRemainingHours_CountsDownFromExplicitStart(t *testing.T) {
	e := NewEngine()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d := testDonor("kidney", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(10)
		d.IschemiaStartedAt = &start
	})

	assert.Equal(t, 7.5, e.RemainingHours(d, "kidney", start.Add(2*time.Hour+30*time.Minute)))
	assert.Equal(t, 0.0, e.RemainingHours(d, "kidney", start.Add(11*time.Hour)))
}

func TestRemainingHours_HeartWindowElapsed(t *testing.T) {
	e := NewEngine()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d := testDonor("heart", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(6)
		d.IschemiaStartedAt = &start
	})
	now := start.Add(7 * time.Hour)

	assert.Equal(t, 0.0, e.RemainingHours(d, "heart", now))
	assert.False(t, e.IsViableNow(d, "heart", now))
}

func TestIschemiaStart_Fallbacks(t *testing.T) {
	e := NewEngine()

	explicit := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d := testDonor("kidney", func(d *models.Donor) {
		d.IschemiaStartedAt = &explicit
	})
	assert.Equal(t, explicit, e.IschemiaStart(d), "explicit start wins")

	d = testDonor("kidney", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(8)
		d.UpdatedAt = d.CreatedAt.Add(3 * time.Hour)
	})
	assert.Equal(t, d.UpdatedAt, e.IschemiaStart(d), "explicit limit falls back to last update")

	d = testDonor("kidney")
	d.UpdatedAt = d.CreatedAt.Add(3 * time.Hour)
	assert.Equal(t, d.CreatedAt, e.IschemiaStart(d), "no explicit limit falls back to creation")
}

func TestRemainingHours_RoundsToOneDecimal(t *testing.T) {
	e := NewEngine()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d := testDonor("liver", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(12)
		d.IschemiaStartedAt = &start
	})

	// 12 - 5h20m elapsed = 6.666... -> 6.7
	assert.Equal(t, 6.7, e.RemainingHours(d, "liver", start.Add(5*time.Hour+20*time.Minute)))
}
