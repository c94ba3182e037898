package repositories

import (
	"errors"
	"time"

	"organmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDonorNotFound = errors.New("donor not found")
)

type DonorRepository interface {
	FindByID(id string) (*models.Donor, error)
	Create(donor *models.Donor) error
	Update(donor *models.Donor) error
	UpdateStatus(donorID string, status models.DonorStatus) error
	Delete(donorID string) error
	FindWithFilter(criteria DonorFilter) ([]models.Donor, int64, error)
	FindActiveByOrgan(organ string, limit, offset int) ([]models.Donor, error)
	ExpireOverdue(now time.Time) (int64, error)
}

type DonorRepositoryImpl struct {
	db *gorm.DB
}

type DonorFilter struct {
	BloodType string
	Organ     string
	Status    models.DonorStatus
	Page      int
	PageSize  int
}

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &DonorRepositoryImpl{db: db}
}

func (r *DonorRepositoryImpl) FindByID(id string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.First(&donor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (r *DonorRepositoryImpl) Create(donor *models.Donor) error {
	return r.db.Create(donor).Error
}

func (r *DonorRepositoryImpl) Update(donor *models.Donor) error {
	result := r.db.Model(donor).Updates(map[string]interface{}{
		"name":                     donor.Name,
		"age":                      donor.Age,
		"gender":                   donor.Gender,
		"blood_type":               donor.BloodType,
		"organs_available":         donor.OrgansAvailable,
		"hla_typing":               donor.HLATyping,
		"height_cm":                donor.HeightCm,
		"weight_kg":                donor.WeightKg,
		"medical_history":          donor.MedicalHistory,
		"cause_of_death":           donor.CauseOfDeath,
		"cold_ischemia_time_hours": donor.ColdIschemiaTimeHours,
		"ischemia_started_at":      donor.IschemiaStartedAt,
		"status":                   donor.Status,
		"updated_at":               time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonorNotFound
	}
	return nil
}

func (r *DonorRepositoryImpl) UpdateStatus(donorID string, status models.DonorStatus) error {
	result := r.db.Model(&models.Donor{}).Where("id = ?", donorID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonorNotFound
	}
	return nil
}

func (r *DonorRepositoryImpl) Delete(donorID string) error {
	result := r.db.Delete(&models.Donor{}, "id = ?", donorID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonorNotFound
	}
	return nil
}

func (r *DonorRepositoryImpl) FindWithFilter(criteria DonorFilter) ([]models.Donor, int64, error) {
	query := r.db.Model(&models.Donor{})

	if criteria.BloodType != "" {
		query = query.Where("blood_type = ?", criteria.BloodType)
	}
	if criteria.Organ != "" {
		query = query.Where("? = ANY(organs_available)", criteria.Organ)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}

	var donors []models.Donor
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&donors).Error
	if err != nil {
		return nil, 0, err
	}
	return donors, total, nil
}

func (r *DonorRepositoryImpl) FindActiveByOrgan(organ string, limit, offset int) ([]models.Donor, error) {
	var donors []models.Donor
	err := r.db.Where("status = ?", models.DonorStatusActive).
		Where("? = ANY(organs_available)", organ).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&donors).Error
	if err != nil {
		return nil, err
	}
	return donors, nil
}

// ExpireOverdue marks donors whose explicit ischemia window has fully
// elapsed. Donors without an explicit window are never expired here.
func (r *DonorRepositoryImpl) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Donor{}).
		Where("status = ?", models.DonorStatusActive).
		Where("cold_ischemia_time_hours IS NOT NULL").
		Where("COALESCE(ischemia_started_at, updated_at) + cold_ischemia_time_hours * INTERVAL '1 hour' <= ?", now).
		Updates(map[string]interface{}{
			"status":     models.DonorStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
