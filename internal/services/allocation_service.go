package services

import (
	"encoding/json"

	"organmatch_backend/internal/logger"
	"organmatch_backend/internal/models"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/services/dto"
	"organmatch_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type AllocationService interface {
	CreateFromMatch(req *dto.CreateAllocationRequest) (*models.Allocation, error)
	GetByID(allocationID string) (*models.Allocation, error)
	UpdateStatus(allocationID string, req *dto.UpdateAllocationStatusRequest) (*models.Allocation, error)
	List(query *dto.AllocationSearchQuery) ([]models.Allocation, int64, error)
}

type allocationService struct {
	allocationRepo repositories.AllocationRepository
	donorRepo      repositories.DonorRepository
	recipientRepo  repositories.RecipientRepository
	matchingSvc    MatchingService
}

func NewAllocationService(
	allocationRepo repositories.AllocationRepository,
	donorRepo repositories.DonorRepository,
	recipientRepo repositories.RecipientRepository,
	matchingSvc MatchingService,
) AllocationService {
	return &allocationService{
		allocationRepo: allocationRepo,
		donorRepo:      donorRepo,
		recipientRepo:  recipientRepo,
		matchingSvc:    matchingSvc,
	}
}

// Legal lifecycle moves. Cancelled and completed are terminal.
var allocationTransitions = map[models.AllocationStatus][]models.AllocationStatus{
	models.AllocationStatusProposed:  {models.AllocationStatusAccepted, models.AllocationStatusCancelled},
	models.AllocationStatusAccepted:  {models.AllocationStatusScheduled, models.AllocationStatusCancelled},
	models.AllocationStatusScheduled: {models.AllocationStatusCompleted, models.AllocationStatusCancelled},
}

// CreateFromMatch re-checks the pairing at decision time and records the
// allocation with the scores as they stand now, not as they were when the
// coordinator last looked.
func (s *allocationService) CreateFromMatch(req *dto.CreateAllocationRequest) (*models.Allocation, error) {
	compat, err := s.matchingSvc.GetCompatibility(req.DonorID, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !compat.Compatible {
		return nil, apperrors.ErrInvalidOperation("allocation",
			"pairing is no longer compatible: "+compat.ExclusionReason)
	}

	existing, err := s.allocationRepo.FindActiveByDonor(req.DonorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(existing) > 0 {
		return nil, apperrors.ErrConflict(nil, "allocation", "donor already has an active allocation")
	}

	factors, _ := json.Marshal(compat.CompatibilityFactors)

	allocation := &models.Allocation{
		DonorID:              req.DonorID,
		RecipientID:          req.RecipientID,
		OrganType:            compat.Organ,
		MatchScore:           compat.MatchScore,
		RiskLevel:            compat.RiskLevel,
		RiskPercentage:       compat.RiskPercentage,
		UrgencyLevel:         compat.UrgencyLevel,
		CompatibilityFactors: datatypes.JSON(factors),
		ScheduledAt:          req.ScheduledAt,
		Status:               string(models.AllocationStatusProposed),
		Notes:                req.Notes,
	}

	if err := s.allocationRepo.Create(allocation); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.donorRepo.UpdateStatus(req.DonorID, models.DonorStatusAllocated); err != nil {
		logger.WithError(err).Warn("failed to mark donor allocated", "donor_id", req.DonorID)
	}

	logger.Info("allocation proposed",
		"allocation_id", allocation.ID,
		"donor_id", req.DonorID,
		"recipient_id", req.RecipientID,
		"organ", compat.Organ,
		"score", compat.MatchScore,
	)
	return allocation, nil
}

func (s *allocationService) GetByID(allocationID string) (*models.Allocation, error) {
	allocation, err := s.allocationRepo.FindByID(allocationID)
	if err != nil {
		if err == repositories.ErrAllocationNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return allocation, nil
}

func (s *allocationService) UpdateStatus(allocationID string, req *dto.UpdateAllocationStatusRequest) (*models.Allocation, error) {
	allocation, err := s.GetByID(allocationID)
	if err != nil {
		return nil, err
	}

	from := models.AllocationStatus(allocation.Status)
	to := models.AllocationStatus(req.Status)
	if !transitionAllowed(from, to) {
		return nil, apperrors.ErrAllocationTransitionFrom(string(from), string(to))
	}

	if err := s.allocationRepo.UpdateStatus(allocationID, to, req.Notes); err != nil {
		return nil, apperrors.InternalError(err)
	}

	switch to {
	case models.AllocationStatusCompleted:
		if err := s.recipientRepo.UpdateStatus(allocation.RecipientID, models.RecipientStatusTransplanted); err != nil {
			logger.WithError(err).Warn("failed to mark recipient transplanted", "recipient_id", allocation.RecipientID)
		}
	case models.AllocationStatusCancelled:
		// The organ goes back on offer.
		if err := s.donorRepo.UpdateStatus(allocation.DonorID, models.DonorStatusActive); err != nil {
			logger.WithError(err).Warn("failed to reactivate donor", "donor_id", allocation.DonorID)
		}
	}

	return s.GetByID(allocationID)
}

func (s *allocationService) List(query *dto.AllocationSearchQuery) ([]models.Allocation, int64, error) {
	criteria := repositories.AllocationFilter{
		DonorID:     query.DonorID,
		RecipientID: query.RecipientID,
		OrganType:   query.OrganType,
		Status:      models.AllocationStatus(query.Status),
		Page:        query.Page,
		PageSize:    query.PageSize,
	}
	allocations, total, err := s.allocationRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return allocations, total, nil
}

func transitionAllowed(from, to models.AllocationStatus) bool {
	for _, allowed := range allocationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
