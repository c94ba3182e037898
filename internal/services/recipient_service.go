package services

import (
	"time"

	"organmatch_backend/internal/models"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/services/dto"
	"organmatch_backend/pkg/apperrors"
)

type RecipientService interface {
	Create(req *dto.CreateRecipientRequest) (*models.Recipient, error)
	GetByID(recipientID string) (*models.Recipient, error)
	Update(recipientID string, req *dto.UpdateRecipientRequest) (*models.Recipient, error)
	Deactivate(recipientID string) error
	Search(query *dto.RecipientSearchQuery) ([]models.Recipient, int64, error)
}

type recipientService struct {
	recipientRepo repositories.RecipientRepository
}

func NewRecipientService(recipientRepo repositories.RecipientRepository) RecipientService {
	return &recipientService{recipientRepo: recipientRepo}
}

func (s *recipientService) Create(req *dto.CreateRecipientRequest) (*models.Recipient, error) {
	listedAt := req.ListedAt
	if listedAt == nil {
		now := time.Now()
		listedAt = &now
	}

	recipient := &models.Recipient{
		Name:                 req.Name,
		Age:                  req.Age,
		Gender:               req.Gender,
		BloodType:            req.BloodType,
		OrganNeeded:          req.OrganNeeded,
		UrgencyScore:         req.UrgencyScore,
		MeldScore:            req.MeldScore,
		UnosStatus:           req.UnosStatus,
		UnacceptableAntigens: req.UnacceptableAntigens,
		HeightCm:             req.HeightCm,
		WeightKg:             req.WeightKg,
		MedicalHistory:       req.MedicalHistory,
		Status:               string(models.RecipientStatusActive),
		ListedAt:             listedAt,
	}
	if req.HLATyping != nil {
		recipient.SetHLATyping(req.HLATyping)
	}

	if err := s.recipientRepo.Create(recipient); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return recipient, nil
}

func (s *recipientService) GetByID(recipientID string) (*models.Recipient, error) {
	recipient, err := s.recipientRepo.FindByID(recipientID)
	if err != nil {
		if err == repositories.ErrRecipientNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return recipient, nil
}

func (s *recipientService) Update(recipientID string, req *dto.UpdateRecipientRequest) (*models.Recipient, error) {
	recipient, err := s.GetByID(recipientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipient.Name = *req.Name
	}
	if req.Age != nil {
		recipient.Age = *req.Age
	}
	if req.Gender != nil {
		recipient.Gender = *req.Gender
	}
	if req.BloodType != nil {
		recipient.BloodType = *req.BloodType
	}
	if req.OrganNeeded != nil {
		recipient.OrganNeeded = *req.OrganNeeded
	}
	if req.UrgencyScore != nil {
		recipient.UrgencyScore = *req.UrgencyScore
	}
	if req.MeldScore != nil {
		recipient.MeldScore = req.MeldScore
	}
	if req.UnosStatus != nil {
		recipient.UnosStatus = req.UnosStatus
	}
	if req.HLATyping != nil {
		recipient.SetHLATyping(req.HLATyping)
	}
	if req.UnacceptableAntigens != nil {
		recipient.UnacceptableAntigens = req.UnacceptableAntigens
	}
	if req.HeightCm != nil {
		recipient.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		recipient.WeightKg = req.WeightKg
	}
	if req.MedicalHistory != nil {
		recipient.MedicalHistory = *req.MedicalHistory
	}
	if req.Status != nil {
		if !validRecipientStatus(*req.Status) {
			return nil, apperrors.ErrInvalidStatus("recipient", "unknown recipient status: "+*req.Status)
		}
		recipient.Status = *req.Status
	}

	if err := s.recipientRepo.Update(recipient); err != nil {
		if err == repositories.ErrRecipientNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return recipient, nil
}

func (s *recipientService) Deactivate(recipientID string) error {
	err := s.recipientRepo.UpdateStatus(recipientID, models.RecipientStatusInactive)
	if err != nil {
		if err == repositories.ErrRecipientNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *recipientService) Search(query *dto.RecipientSearchQuery) ([]models.Recipient, int64, error) {
	criteria := repositories.RecipientFilter{
		BloodType:   query.BloodType,
		OrganNeeded: query.OrganNeeded,
		Status:      models.RecipientStatus(query.Status),
		Page:        query.Page,
		PageSize:    query.PageSize,
	}
	if query.MinUrgency != nil {
		criteria.MinUrgency = *query.MinUrgency
	}

	recipients, total, err := s.recipientRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return recipients, total, nil
}

func validRecipientStatus(status string) bool {
	switch models.RecipientStatus(status) {
	case models.RecipientStatusActive, models.RecipientStatusInactive,
		models.RecipientStatusTransplanted, models.RecipientStatusDeceased:
		return true
	default:
		return false
	}
}
