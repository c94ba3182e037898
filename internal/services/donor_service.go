package services

import (
	"organmatch_backend/internal/models"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/services/dto"
	"organmatch_backend/pkg/apperrors"
)

type DonorService interface {
	Create(req *dto.CreateDonorRequest) (*models.Donor, error)
	GetByID(donorID string) (*models.Donor, error)
	Update(donorID string, req *dto.UpdateDonorRequest) (*models.Donor, error)
	Withdraw(donorID string) error
	List(criteria repositories.DonorFilter) ([]models.Donor, int64, error)
}

type donorService struct {
	donorRepo repositories.DonorRepository
}

func NewDonorService(donorRepo repositories.DonorRepository) DonorService {
	return &donorService{donorRepo: donorRepo}
}

func (s *donorService) Create(req *dto.CreateDonorRequest) (*models.Donor, error) {
	donor := &models.Donor{
		Name:                  req.Name,
		Age:                   req.Age,
		Gender:                req.Gender,
		BloodType:             req.BloodType,
		OrgansAvailable:       req.OrgansAvailable,
		HeightCm:              req.HeightCm,
		WeightKg:              req.WeightKg,
		MedicalHistory:        req.MedicalHistory,
		CauseOfDeath:          req.CauseOfDeath,
		ColdIschemiaTimeHours: req.ColdIschemiaTimeHours,
		IschemiaStartedAt:     req.IschemiaStartedAt,
		Status:                string(models.DonorStatusActive),
	}
	if req.HLATyping != nil {
		donor.SetHLATyping(req.HLATyping)
	}

	if err := s.donorRepo.Create(donor); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return donor, nil
}

func (s *donorService) GetByID(donorID string) (*models.Donor, error) {
	donor, err := s.donorRepo.FindByID(donorID)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return donor, nil
}

func (s *donorService) Update(donorID string, req *dto.UpdateDonorRequest) (*models.Donor, error) {
	donor, err := s.GetByID(donorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		donor.Name = *req.Name
	}
	if req.Age != nil {
		donor.Age = *req.Age
	}
	if req.Gender != nil {
		donor.Gender = *req.Gender
	}
	if req.BloodType != nil {
		donor.BloodType = *req.BloodType
	}
	if req.OrgansAvailable != nil {
		donor.OrgansAvailable = req.OrgansAvailable
	}
	if req.HLATyping != nil {
		donor.SetHLATyping(req.HLATyping)
	}
	if req.HeightCm != nil {
		donor.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		donor.WeightKg = req.WeightKg
	}
	if req.MedicalHistory != nil {
		donor.MedicalHistory = *req.MedicalHistory
	}
	if req.CauseOfDeath != nil {
		donor.CauseOfDeath = *req.CauseOfDeath
	}
	if req.ColdIschemiaTimeHours != nil {
		donor.ColdIschemiaTimeHours = req.ColdIschemiaTimeHours
	}
	if req.IschemiaStartedAt != nil {
		donor.IschemiaStartedAt = req.IschemiaStartedAt
	}
	if req.Status != nil {
		if !validDonorStatus(*req.Status) {
			return nil, apperrors.ErrInvalidStatus("donor", "unknown donor status: "+*req.Status)
		}
		donor.Status = *req.Status
	}

	if err := s.donorRepo.Update(donor); err != nil {
		if err == repositories.ErrDonorNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return donor, nil
}

func (s *donorService) Withdraw(donorID string) error {
	err := s.donorRepo.UpdateStatus(donorID, models.DonorStatusWithdrawn)
	if err != nil {
		if err == repositories.ErrDonorNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *donorService) List(criteria repositories.DonorFilter) ([]models.Donor, int64, error) {
	donors, total, err := s.donorRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return donors, total, nil
}

func validDonorStatus(status string) bool {
	switch models.DonorStatus(status) {
	case models.DonorStatusActive, models.DonorStatusAllocated,
		models.DonorStatusExpired, models.DonorStatusWithdrawn:
		return true
	default:
		return false
	}
}
