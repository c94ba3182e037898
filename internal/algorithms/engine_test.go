package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organmatch_backend/internal/models"
)

var matchNow = time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

func TestFindMatches_EmptyOrganList(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) { d.OrgansAvailable = nil })

	matches, err := e.FindMatches(d, []models.Recipient{testRecipient("kidney")}, matchNow)

	require.NoError(t, err, "no organ to offer is a business outcome, not an error")
	assert.Empty(t, matches)
}

func TestFindMatches_ExpiredViabilityWindow(t *testing.T) {
	e := NewEngine()
	start := matchNow.Add(-7 * time.Hour)
	d := testDonor("heart", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(6)
		d.IschemiaStartedAt = &start
	})

	matches, err := e.FindMatches(d, []models.Recipient{testRecipient("heart")}, matchNow)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_IneligibleDonorIsHardFailure(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) { d.Age = 80 })

	matches, err := e.FindMatches(d, []models.Recipient{testRecipient("kidney")}, matchNow)

	assert.Nil(t, matches)
	var inel *IneligibilityError
	require.ErrorAs(t, err, &inel)
	assert.Equal(t, "donor", inel.Party)
	assert.Contains(t, inel.Reason, "18-70")
}

func TestFindMatches_ABOIncompatibleRecipientExcluded(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) { d.BloodType = "A+" })
	r := testRecipient("kidney", func(r *models.Recipient) { r.BloodType = "O+" })

	matches, err := e.FindMatches(d, []models.Recipient{r}, matchNow)

	require.NoError(t, err)
	assert.Empty(t, matches, "A+ donor is not compatible with an O+ recipient")
}

func TestFindMatches_PreFilters(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) { d.SetHLATyping(fullTyping) })

	pool := []models.Recipient{
		testRecipient("liver"), // wrong organ
		testRecipient("kidney", func(r *models.Recipient) { r.Status = "inactive" }),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "keeper"
			r.SetHLATyping(fullTyping)
		}),
	}

	matches, err := e.FindMatches(d, pool, matchNow)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "keeper", matches[0].Recipient.ID)
}

func TestFindMatches_InvariantsHold(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) {
		d.WeightKg = floatPtr(80)
		d.SetHLATyping(fullTyping)
	})

	pool := []models.Recipient{
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "r1"
			r.UrgencyScore = 9
			r.SetHLATyping(fullTyping)
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "r2"
			r.UrgencyScore = 2
			r.WeightKg = floatPtr(90)
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "r3"
			r.UrgencyScore = 6
			r.MedicalHistory = "diabetes"
		}),
	}

	matches, err := e.FindMatches(d, pool, matchNow)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, m := range matches {
		assert.Greater(t, m.MatchScore, 30.0)
		assert.LessOrEqual(t, m.MatchScore, 100.0)
		assert.GreaterOrEqual(t, m.RiskPercentage, 0.0)
		assert.LessOrEqual(t, m.RiskPercentage, 80.0)
		assert.GreaterOrEqual(t, m.Factors.HLACompatibility, 0.0)
		assert.LessOrEqual(t, m.Factors.HLACompatibility, 1.0)
		assert.Greater(t, m.RemainingViabilityHours, 0.0)
	}
}

func TestFindMatches_OrderedByUrgencyThenScore(t *testing.T) {
	e := NewEngine()
	d := testDonor("kidney", func(d *models.Donor) { d.SetHLATyping(fullTyping) })

	pool := []models.Recipient{
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "routine-high-score"
			r.UrgencyScore = 2
			r.SetHLATyping(fullTyping)
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "critical-low-score"
			r.UrgencyScore = 9
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "urgent"
			r.UrgencyScore = 6
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "critical-high-score"
			r.UrgencyScore = 10
			r.SetHLATyping(fullTyping)
		}),
	}

	matches, err := e.FindMatches(d, pool, matchNow)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, "critical-high-score", matches[0].Recipient.ID)
	assert.Equal(t, "critical-low-score", matches[1].Recipient.ID)
	assert.Equal(t, "urgent", matches[2].Recipient.ID)
	assert.Equal(t, "routine-high-score", matches[3].Recipient.ID)

	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		assert.GreaterOrEqual(t, urgencyRank[prev.UrgencyLevel], urgencyRank[cur.UrgencyLevel])
		if prev.UrgencyLevel == cur.UrgencyLevel {
			assert.GreaterOrEqual(t, prev.MatchScore, cur.MatchScore)
		}
	}
}

func TestFindMatches_BelowThresholdDiscarded(t *testing.T) {
	// A custom policy with the threshold pushed above any attainable score
	// proves filtering happens on the policy value, not a literal.
	p := DefaultPolicy()
	p.MinViableScore = 200
	e := NewEngine(WithPolicy(p))
	d := testDonor("kidney", func(d *models.Donor) { d.SetHLATyping(fullTyping) })
	r := testRecipient("kidney", func(r *models.Recipient) { r.SetHLATyping(fullTyping) })

	matches, err := e.FindMatches(d, []models.Recipient{r}, matchNow)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_TraceHookObservesDecisions(t *testing.T) {
	var events []string
	e := NewEngine(WithTrace(func(event string, fields map[string]any) {
		events = append(events, event)
	}))
	d := testDonor("kidney", func(d *models.Donor) { d.BloodType = "A+" })
	r := testRecipient("kidney", func(r *models.Recipient) { r.BloodType = "O+" })

	_, err := e.FindMatches(d, []models.Recipient{r}, matchNow)
	require.NoError(t, err)

	assert.Contains(t, events, "recipient_excluded")
	assert.Contains(t, events, "matches_ranked")
}

func TestFindMatches_FaultInOneRecipientIsContained(t *testing.T) {
	// A hook that blows up while one recipient is being evaluated stands in
	// for malformed data panicking mid-pipeline. The batch must survive it.
	var events []string
	e := NewEngine(WithTrace(func(event string, fields map[string]any) {
		if event == "recipient_excluded" {
			panic("hook failure")
		}
		events = append(events, event)
	}))
	d := testDonor("kidney", func(d *models.Donor) {
		d.BloodType = "A+"
		d.SetHLATyping(fullTyping)
	})

	pool := []models.Recipient{
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "abo-mismatch"
			r.BloodType = "O+"
		}),
		testRecipient("kidney", func(r *models.Recipient) {
			r.ID = "healthy"
			r.BloodType = "A+"
			r.SetHLATyping(fullTyping)
		}),
	}

	matches, err := e.FindMatches(d, pool, matchNow)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "healthy", matches[0].Recipient.ID)
	assert.Contains(t, events, "recipient_fault")
}

func TestFindMatches_SingleClockSample(t *testing.T) {
	e := NewEngine()
	start := matchNow.Add(-2 * time.Hour)
	d := testDonor("kidney", func(d *models.Donor) {
		d.ColdIschemiaTimeHours = floatPtr(20)
		d.IschemiaStartedAt = &start
	})

	pool := []models.Recipient{
		testRecipient("kidney", func(r *models.Recipient) { r.ID = "a" }),
		testRecipient("kidney", func(r *models.Recipient) { r.ID = "b" }),
	}

	matches, err := e.FindMatches(d, pool, matchNow)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, matches[0].RemainingViabilityHours, matches[1].RemainingViabilityHours,
		"every candidate observes the same now")
	assert.Equal(t, 18.0, matches[0].RemainingViabilityHours)
}
