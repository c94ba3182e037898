package algorithms

import (
	"fmt"
	"sort"
	"time"

	"organmatch_backend/internal/models"
)

// TraceFunc receives engine decision events. The engine is side-effect free
// by default; callers attach a hook when they want diagnostics.
type TraceFunc func(event string, fields map[string]any)

type Option func(*Engine)

func WithPolicy(p *Policy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithTrace(t TraceFunc) Option {
	return func(e *Engine) { e.trace = t }
}

// Engine is the organ allocation decision engine. It is a pure function of
// its inputs plus the policy tables: no durable state, safe for concurrent
// use across batches.
type Engine struct {
	policy *Policy
	trace  TraceFunc
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy exposes the engine's clinical policy tables (read-only by convention).
func (e *Engine) Policy() *Policy {
	return e.policy
}

func (e *Engine) emit(event string, fields map[string]any) {
	if e.trace != nil {
		e.trace(event, fields)
	}
}

// MatchCandidate is one ranked allocation proposal. Ephemeral engine output;
// persisting a decision is the caller's business.
type MatchCandidate struct {
	Recipient               *models.Recipient     `json:"recipient"`
	MatchScore              float64               `json:"match_score"`
	Factors                 *CompatibilityFactors `json:"compatibility_factors"`
	RiskPercentage          float64               `json:"risk_percentage"`
	RiskLevel               models.RiskLevel      `json:"risk_level"`
	UrgencyLevel            models.UrgencyLevel   `json:"urgency_level"`
	RemainingViabilityHours float64               `json:"remaining_viability_hours"`
}

// IneligibilityError is the engine's single hard failure: the donor violates
// policy and the caller must not proceed. "No matches" is never an error.
type IneligibilityError struct {
	Party  string
	Reason string
}

func (e *IneligibilityError) Error() string {
	return fmt.Sprintf("%s not eligible: %s", e.Party, e.Reason)
}

var urgencyRank = map[models.UrgencyLevel]int{
	models.UrgencyRoutine:  0,
	models.UrgencyUrgent:   1,
	models.UrgencyCritical: 2,
}

// FindMatches ranks the candidate pool for the donor's primary organ.
// "now" is sampled once by the caller so every stage observes the same clock.
//
// Outcomes:
//   - empty organ list, expired explicit ischemia window, or nobody passing
//     the filters/threshold -> empty slice, nil error
//   - donor failing eligibility -> nil, *IneligibilityError
//   - a fault while scoring one recipient skips that recipient only
func (e *Engine) FindMatches(donor *models.Donor, pool []models.Recipient, now time.Time) ([]*MatchCandidate, error) {
	organ := donor.PrimaryOrgan()
	if organ == "" {
		e.emit("no_organ_offered", map[string]any{"donor_id": donor.ID})
		return []*MatchCandidate{}, nil
	}

	if !e.IsViableNow(donor, organ, now) {
		e.emit("viability_expired", map[string]any{"donor_id": donor.ID, "organ": organ})
		return []*MatchCandidate{}, nil
	}

	if ok, reason := e.CheckDonorEligibility(donor, organ); !ok {
		return nil, &IneligibilityError{Party: "donor", Reason: reason}
	}

	remaining := e.RemainingHours(donor, organ, now)

	results := make([]*MatchCandidate, 0, len(pool))
	for i := range pool {
		recipient := &pool[i]
		candidate, ok := e.evaluate(donor, recipient, organ, remaining, now)
		if ok {
			results = append(results, candidate)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := urgencyRank[results[i].UrgencyLevel], urgencyRank[results[j].UrgencyLevel]
		if ri != rj {
			return ri > rj
		}
		return results[i].MatchScore > results[j].MatchScore
	})

	e.emit("matches_ranked", map[string]any{
		"donor_id": donor.ID,
		"organ":    organ,
		"pool":     len(pool),
		"matches":  len(results),
	})

	return results, nil
}

// evaluate runs the gate/score/classify pipeline for one recipient. A panic
// from malformed data is contained here so one bad record cannot abort the
// batch.
func (e *Engine) evaluate(donor *models.Donor, recipient *models.Recipient, organ string, remaining float64, now time.Time) (candidate *MatchCandidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.emit("recipient_fault", map[string]any{
				"recipient_id": recipient.ID,
				"panic":        fmt.Sprint(r),
			})
			candidate, ok = nil, false
		}
	}()

	// Cheap pre-filters first: organ, status, ABO.
	if recipient.OrganNeeded != organ {
		return nil, false
	}
	if recipient.Status != string(models.RecipientStatusActive) {
		return nil, false
	}
	if !e.BloodCompatible(donor.BloodType, recipient.BloodType) {
		e.emit("recipient_excluded", map[string]any{"recipient_id": recipient.ID, "rule": "abo"})
		return nil, false
	}

	if eligible, reason := e.CheckRecipientEligibility(recipient, organ); !eligible {
		e.emit("recipient_excluded", map[string]any{"recipient_id": recipient.ID, "rule": reason})
		return nil, false
	}
	if compatible, reason := e.CrossmatchCompatible(donor, recipient, organ); !compatible {
		e.emit("recipient_excluded", map[string]any{"recipient_id": recipient.ID, "rule": reason})
		return nil, false
	}
	if okAge, reason := e.CheckAgeDifference(donor, recipient, organ); !okAge {
		e.emit("recipient_excluded", map[string]any{"recipient_id": recipient.ID, "rule": reason})
		return nil, false
	}

	score, factors, err := e.ScoreMatch(donor, recipient, organ)
	if err != nil {
		e.emit("recipient_fault", map[string]any{"recipient_id": recipient.ID, "error": err.Error()})
		return nil, false
	}
	if score <= e.policy.MinViableScore {
		return nil, false
	}

	risk := e.AssessRisk(donor, recipient, organ, score, factors.HLACompatibility, now)

	return &MatchCandidate{
		Recipient:               recipient,
		MatchScore:              score,
		Factors:                 factors,
		RiskPercentage:          risk.Percentage,
		RiskLevel:               risk.Level,
		UrgencyLevel:            e.ClassifyUrgency(recipient, organ),
		RemainingViabilityHours: remaining,
	}, true
}
