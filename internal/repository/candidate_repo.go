package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shanexuu/sot-command-center/internal/models"
)

// CandidateRepository provides read and partial-update access to candidates.
type CandidateRepository interface {
	ListByStatus(ctx context.Context, status string) ([]models.Candidate, error)
	GetByID(ctx context.Context, id uint) (models.Candidate, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository constructs a candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) ListByStatus(ctx context.Context, status string) ([]models.Candidate, error) {
	query := r.db.WithContext(ctx).Model(&models.Candidate{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var candidates []models.Candidate
	if err := query.Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uint) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}

func (r *candidateRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
