package algorithms

import (
	"math"
	"time"

	"organmatch_backend/internal/models"
)

// LimitHours returns the donor's cold-ischemia window for an organ: the
// explicit window when the record carries one, else the per-organ default.
func (e *Engine) LimitHours(donor *models.Donor, organ string) float64 {
	if donor.ColdIschemiaTimeHours != nil {
		return *donor.ColdIschemiaTimeHours
	}
	if op, ok := e.policy.OrganPolicy(organ); ok {
		return op.IschemiaLimitHours
	}
	return 0
}

// IschemiaStart picks the clock-start timestamp: the explicit field when
// present; the last-update time when an explicit window was set (recovery
// updates the record when the clock actually starts); else creation time.
func (e *Engine) IschemiaStart(donor *models.Donor) time.Time {
	if donor.IschemiaStartedAt != nil {
		return *donor.IschemiaStartedAt
	}
	if donor.ColdIschemiaTimeHours != nil && !donor.UpdatedAt.IsZero() {
		return donor.UpdatedAt
	}
	return donor.CreatedAt
}

// RemainingHours reports the viability window left at "now", rounded to one
// decimal. Without an explicit window the static default is returned with no
// countdown: the clock is treated as not yet started.
func (e *Engine) RemainingHours(donor *models.Donor, organ string, now time.Time) float64 {
	limit := e.LimitHours(donor, organ)
	if donor.ColdIschemiaTimeHours == nil {
		return roundTenth(limit)
	}
	elapsed := now.Sub(e.IschemiaStart(donor)).Hours()
	remaining := limit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return roundTenth(remaining)
}

// IsViableNow reports whether any viability window remains. A non-viable
// organ is an expected business outcome, never an error.
func (e *Engine) IsViableNow(donor *models.Donor, organ string, now time.Time) bool {
	return e.RemainingHours(donor, organ, now) > 0
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
