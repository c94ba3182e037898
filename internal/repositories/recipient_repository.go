package repositories

import (
	"errors"
	"time"

	"organmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
)

type RecipientRepository interface {
	FindByID(id string) (*models.Recipient, error)
	Create(recipient *models.Recipient) error
	Update(recipient *models.Recipient) error
	UpdateStatus(recipientID string, status models.RecipientStatus) error
	Delete(recipientID string) error
	FindWithFilter(criteria RecipientFilter) ([]models.Recipient, int64, error)
	FindWaitlistForOrgan(organ string) ([]models.Recipient, error)
}

type RecipientRepositoryImpl struct {
	db *gorm.DB
}

type RecipientFilter struct {
	BloodType   string
	OrganNeeded string
	Status      models.RecipientStatus
	MinUrgency  int
	Page        int
	PageSize    int
}

func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &RecipientRepositoryImpl{db: db}
}

func (r *RecipientRepositoryImpl) FindByID(id string) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.First(&recipient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	return &recipient, nil
}

func (r *RecipientRepositoryImpl) Create(recipient *models.Recipient) error {
	return r.db.Create(recipient).Error
}

func (r *RecipientRepositoryImpl) Update(recipient *models.Recipient) error {
	result := r.db.Model(recipient).Updates(map[string]interface{}{
		"name":                  recipient.Name,
		"age":                   recipient.Age,
		"gender":                recipient.Gender,
		"blood_type":            recipient.BloodType,
		"organ_needed":          recipient.OrganNeeded,
		"urgency_score":         recipient.UrgencyScore,
		"meld_score":            recipient.MeldScore,
		"unos_status":           recipient.UnosStatus,
		"hla_typing":            recipient.HLATyping,
		"unacceptable_antigens": recipient.UnacceptableAntigens,
		"height_cm":             recipient.HeightCm,
		"weight_kg":             recipient.WeightKg,
		"medical_history":       recipient.MedicalHistory,
		"status":                recipient.Status,
		"listed_at":             recipient.ListedAt,
		"updated_at":            time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipientNotFound
	}
	return nil
}

func (r *RecipientRepositoryImpl) UpdateStatus(recipientID string, status models.RecipientStatus) error {
	result := r.db.Model(&models.Recipient{}).Where("id = ?", recipientID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipientNotFound
	}
	return nil
}

func (r *RecipientRepositoryImpl) Delete(recipientID string) error {
	result := r.db.Delete(&models.Recipient{}, "id = ?", recipientID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipientNotFound
	}
	return nil
}

func (r *RecipientRepositoryImpl) FindWithFilter(criteria RecipientFilter) ([]models.Recipient, int64, error) {
	query := r.db.Model(&models.Recipient{})

	if criteria.BloodType != "" {
		query = query.Where("blood_type = ?", criteria.BloodType)
	}
	if criteria.OrganNeeded != "" {
		query = query.Where("organ_needed = ?", criteria.OrganNeeded)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.MinUrgency > 0 {
		query = query.Where("urgency_score >= ?", criteria.MinUrgency)
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

	var recipients []models.Recipient
	err := query.Order("urgency_score DESC, created_at ASC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&recipients).Error
	if err != nil {
		return nil, 0, err
	}
	return recipients, total, nil
}

// FindWaitlistForOrgan loads the active pool for one organ. Finer
// exclusions (blood type, crossmatch, age) are the engine's job, so the
// query stays coarse on purpose.
func (r *RecipientRepositoryImpl) FindWaitlistForOrgan(organ string) ([]models.Recipient, error) {
	var recipients []models.Recipient
	err := r.db.Where("status = ?", models.RecipientStatusActive).
		Where("organ_needed = ?", organ).
		Order("urgency_score DESC").
		Find(&recipients).Error
	if err != nil {
		return nil, err
	}
	return recipients, nil
}
