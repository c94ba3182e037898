package services

import (
	"fmt"
	"time"

	"organmatch_backend/internal/algorithms"
	"organmatch_backend/internal/config"
	"organmatch_backend/internal/logger"
	"organmatch_backend/internal/models"
	"organmatch_backend/internal/pkg/email"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/services/dto"
	"organmatch_backend/pkg/apperrors"
)

type MatchingService interface {
	// Core matching operations
	FindMatchesForDonor(donorID string, limit int, minScore float64) ([]*dto.MatchResult, error)
	GetCompatibility(donorID, recipientID string) (*dto.CompatibilityResult, error)

	// Screening and diagnostics
	GetDonorViability(donorID string) (*dto.ViabilityStatus, error)
	CheckDonorEligibility(donorID string) (*dto.EligibilityResult, error)
	GetMatchingPolicy() (*dto.PolicyView, error)
}

type matchingService struct {
	donorRepo     repositories.DonorRepository
	recipientRepo repositories.RecipientRepository
	engine        *algorithms.Engine
	notifier      email.Notifier
	cfg           *config.Config
}

func NewMatchingService(
	donorRepo repositories.DonorRepository,
	recipientRepo repositories.RecipientRepository,
	notifier email.Notifier,
	cfg *config.Config,
) MatchingService {
	engine := algorithms.NewEngine(
		algorithms.WithTrace(func(event string, fields map[string]any) {
			args := make([]any, 0, len(fields)*2)
			for k, v := range fields {
				args = append(args, k, v)
			}
			logger.With("component", "matching_engine").Debug(event, args...)
		}),
	)
	return &matchingService{
		donorRepo:     donorRepo,
		recipientRepo: recipientRepo,
		engine:        engine,
		notifier:      notifier,
		cfg:           cfg,
	}
}

// -------------------------------
// Core matching operations
// -------------------------------

func (s *matchingService) FindMatchesForDonor(donorID string, limit int, minScore float64) ([]*dto.MatchResult, error) {
	donor, err := s.donorRepo.FindByID(donorID)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	organ := donor.PrimaryOrgan()
	if organ == "" {
		return []*dto.MatchResult{}, nil
	}

	pool, err := s.recipientRepo.FindWaitlistForOrgan(organ)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	candidates, err := s.engine.FindMatches(donor, pool, now)
	if err != nil {
		var inelig *algorithms.IneligibilityError
		if apperrors.As(err, &inelig) {
			return nil, apperrors.ErrDonorIneligible(err, inelig.Reason)
		}
		return nil, apperrors.InternalError(err)
	}

	if minScore <= 0 {
		minScore = s.cfg.Matching.MinScore
	}
	if limit <= 0 {
		limit = s.cfg.Matching.DefaultLimit
	}

	results := make([]*dto.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.MatchScore < minScore {
			continue
		}
		results = append(results, matchCandidateToDTO(c))
		if len(results) >= limit {
			break
		}
	}

	logger.With("donor_id", donorID, "organ", organ).
		Info("matching run completed", "pool", len(pool), "matches", len(results))

	if len(results) > 0 {
		go s.notifyCoordinators(donor, organ, results[0])
	}

	return results, nil
}

func (s *matchingService) GetCompatibility(donorID, recipientID string) (*dto.CompatibilityResult, error) {
	donor, err := s.donorRepo.FindByID(donorID)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	recipient, err := s.recipientRepo.FindByID(recipientID)
	if err != nil {
		if err == repositories.ErrRecipientNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	organ := donor.PrimaryOrgan()
	result := &dto.CompatibilityResult{
		DonorID:     donor.ID,
		RecipientID: recipient.ID,
		Organ:       organ,
	}

	if reason, excluded := s.exclusionReason(donor, recipient, organ); excluded {
		result.ExclusionReason = reason
		return result, nil
	}

	score, factors, err := s.engine.ScoreMatch(donor, recipient, organ)
	if err != nil {
		return nil, apperrors.ErrUnsupportedOrgan(organ).WithError(err)
	}
	if score <= s.engine.Policy().MinViableScore {
		result.ExclusionReason = fmt.Sprintf("match score %.2f below viability threshold", score)
		result.MatchScore = score
		result.CompatibilityFactors = factors
		return result, nil
	}

	now := time.Now()
	risk := s.engine.AssessRisk(donor, recipient, organ, score, factors.HLACompatibility, now)

	result.Compatible = true
	result.MatchScore = score
	result.CompatibilityFactors = factors
	result.RiskLevel = string(risk.Level)
	result.RiskPercentage = risk.Percentage
	result.UrgencyLevel = string(s.engine.ClassifyUrgency(recipient, organ))
	return result, nil
}

// exclusionReason walks the same gates the batch run applies and names
// the first one that fails.
func (s *matchingService) exclusionReason(donor *models.Donor, recipient *models.Recipient, organ string) (string, bool) {
	if organ == "" {
		return "donor offers no organ", true
	}
	if !s.engine.IsViableNow(donor, organ, time.Now()) {
		return "organ preservation window has elapsed", true
	}
	if ok, reason := s.engine.CheckDonorEligibility(donor, organ); !ok {
		return reason, true
	}
	if recipient.OrganNeeded != organ {
		return fmt.Sprintf("recipient needs %s, donor offers %s", recipient.OrganNeeded, organ), true
	}
	if recipient.Status != string(models.RecipientStatusActive) {
		return "recipient is not active on the waitlist", true
	}
	if !s.engine.BloodCompatible(donor.BloodType, recipient.BloodType) {
		return fmt.Sprintf("blood type %s cannot give to %s", donor.BloodType, recipient.BloodType), true
	}
	if ok, reason := s.engine.CheckRecipientEligibility(recipient, organ); !ok {
		return reason, true
	}
	if ok, reason := s.engine.CrossmatchCompatible(donor, recipient, organ); !ok {
		return reason, true
	}
	if ok, reason := s.engine.CheckAgeDifference(donor, recipient, organ); !ok {
		return reason, true
	}
	return "", false
}

// -------------------------------
// Screening and diagnostics
// -------------------------------

func (s *matchingService) GetDonorViability(donorID string) (*dto.ViabilityStatus, error) {
	donor, err := s.donorRepo.FindByID(donorID)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	organ := donor.PrimaryOrgan()
	if organ == "" {
		return nil, apperrors.ErrInvalidOperation("matching", "donor offers no organ")
	}

	now := time.Now()
	return &dto.ViabilityStatus{
		DonorID:         donor.ID,
		Organ:           organ,
		LimitHours:      s.engine.LimitHours(donor, organ),
		RemainingHours:  s.engine.RemainingHours(donor, organ, now),
		Viable:          s.engine.IsViableNow(donor, organ, now),
		CountdownActive: donor.ColdIschemiaTimeHours != nil,
	}, nil
}

func (s *matchingService) CheckDonorEligibility(donorID string) (*dto.EligibilityResult, error) {
	donor, err := s.donorRepo.FindByID(donorID)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	organ := donor.PrimaryOrgan()
	if organ == "" {
		return nil, apperrors.ErrInvalidOperation("matching", "donor offers no organ")
	}

	eligible, reason := s.engine.CheckDonorEligibility(donor, organ)
	return &dto.EligibilityResult{
		DonorID:  donor.ID,
		Organ:    organ,
		Eligible: eligible,
		Reason:   reason,
	}, nil
}

func (s *matchingService) GetMatchingPolicy() (*dto.PolicyView, error) {
	p := s.engine.Policy()

	organs := make(map[string]dto.OrganPolicyView, len(p.Organs))
	for name, op := range p.Organs {
		organs[name] = dto.OrganPolicyView{
			IschemiaLimitHours: op.IschemiaLimitHours,
			DonorAgeMin:        op.DonorAge.Min,
			DonorAgeMax:        op.DonorAge.Max,
			RecipientMaxAge:    op.RecipientMaxAge,
			MaxAgeDifference:   op.MaxAgeDifference,
			HLAWeights:         op.HLAWeights,
			HLAPoints:          op.HLAPoints,
			SizeRatioMin:       op.SizeBand.Min,
			SizeRatioMax:       op.SizeBand.Max,
			SizePoints:         op.SizeBand.Points,
		}
	}

	return &dto.PolicyView{
		MinViableScore:     p.MinViableScore,
		BloodCompatibility: p.BloodCompatibility,
		Organs:             organs,
		Comorbidities:      p.Comorbidities,
	}, nil
}

// -------------------------------
// Notifications
// -------------------------------

// notifyCoordinators alerts staff about the top-ranked match. Best
// effort: delivery failures are logged, never surfaced to the caller.
func (s *matchingService) notifyCoordinators(donor *models.Donor, organ string, top *dto.MatchResult) {
	if s.cfg == nil || !s.cfg.Alerts.Enabled || s.notifier == nil {
		return
	}
	if top.UrgencyLevel != string(models.UrgencyCritical) {
		return
	}

	alert := email.MatchAlert{
		DonorID:        donor.ID,
		DonorName:      donor.Name,
		OrganType:      organ,
		RecipientID:    top.RecipientID,
		RecipientName:  top.RecipientName,
		MatchScore:     top.MatchScore,
		UrgencyLevel:   top.UrgencyLevel,
		RiskLevel:      top.RiskLevel,
		RemainingHours: top.RemainingViabilityHours,
	}
	if err := s.notifier.NotifyMatchFound(s.cfg.Alerts.CoordinatorEmails, alert); err != nil {
		logger.WithError(err).Warn("coordinator match alert failed", "donor_id", donor.ID)
	}
}

func matchCandidateToDTO(c *algorithms.MatchCandidate) *dto.MatchResult {
	return &dto.MatchResult{
		RecipientID:             c.Recipient.ID,
		RecipientName:           c.Recipient.Name,
		BloodType:               c.Recipient.BloodType,
		OrganNeeded:             c.Recipient.OrganNeeded,
		MatchScore:              c.MatchScore,
		RiskLevel:               string(c.RiskLevel),
		RiskPercentage:          c.RiskPercentage,
		UrgencyLevel:            string(c.UrgencyLevel),
		CompatibilityFactors:    c.Factors,
		RemainingViabilityHours: c.RemainingViabilityHours,
	}
}
