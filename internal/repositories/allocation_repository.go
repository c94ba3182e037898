package repositories

import (
	"errors"
	"time"

	"organmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAllocationNotFound = errors.New("allocation not found")
)

type AllocationRepository interface {
	FindByID(id string) (*models.Allocation, error)
	Create(allocation *models.Allocation) error
	UpdateStatus(allocationID string, status models.AllocationStatus, notes string) error
	FindWithFilter(criteria AllocationFilter) ([]models.Allocation, int64, error)
	FindActiveByDonor(donorID string) ([]models.Allocation, error)
	CountByStatus() (map[string]int64, error)
}

type AllocationRepositoryImpl struct {
	db *gorm.DB
}

type AllocationFilter struct {
	DonorID     string
	RecipientID string
	OrganType   string
	Status      models.AllocationStatus
	Page        int
	PageSize    int
}

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &AllocationRepositoryImpl{db: db}
}

func (r *AllocationRepositoryImpl) FindByID(id string) (*models.Allocation, error) {
	var allocation models.Allocation
	err := r.db.Preload("Donor").Preload("Recipient").
		First(&allocation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	return &allocation, nil
}

func (r *AllocationRepositoryImpl) Create(allocation *models.Allocation) error {
	return r.db.Create(allocation).Error
}

func (r *AllocationRepositoryImpl) UpdateStatus(allocationID string, status models.AllocationStatus, notes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}
	result := r.db.Model(&models.Allocation{}).Where("id = ?", allocationID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

func (r *AllocationRepositoryImpl) FindWithFilter(criteria AllocationFilter) ([]models.Allocation, int64, error) {
	query := r.db.Model(&models.Allocation{})

	if criteria.DonorID != "" {
		query = query.Where("donor_id = ?", criteria.DonorID)
	}
	if criteria.RecipientID != "" {
		query = query.Where("recipient_id = ?", criteria.RecipientID)
	}
	if criteria.OrganType != "" {
		query = query.Where("organ_type = ?", criteria.OrganType)
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

	var allocations []models.Allocation
	err := query.Preload("Donor").Preload("Recipient").
		Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&allocations).Error
	if err != nil {
		return nil, 0, err
	}
	return allocations, total, nil
}

func (r *AllocationRepositoryImpl) FindActiveByDonor(donorID string) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.Where("donor_id = ?", donorID).
		Where("status IN ?", []models.AllocationStatus{
			models.AllocationStatusProposed,
			models.AllocationStatusAccepted,
			models.AllocationStatusScheduled,
		}).
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}
	return allocations, nil
}

func (r *AllocationRepositoryImpl) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Allocation{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
