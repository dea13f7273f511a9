package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shanexuu/sot-command-center/internal/models"
)

// PostingRepository provides read and partial-update access to postings.
type PostingRepository interface {
	ListByStatus(ctx context.Context, status string) ([]models.Posting, error)
	ListByOrganization(ctx context.Context, organizationID uint, status string) ([]models.Posting, error)
	GetByID(ctx context.Context, id uint) (models.Posting, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
}

type postingRepository struct {
	db *gorm.DB
}

// NewPostingRepository constructs a posting repository.
func NewPostingRepository(db *gorm.DB) PostingRepository {
	return &postingRepository{db: db}
}

func (r *postingRepository) ListByStatus(ctx context.Context, status string) ([]models.Posting, error) {
	query := r.db.WithContext(ctx).Model(&models.Posting{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var postings []models.Posting
	if err := query.Order("created_at ASC").Find(&postings).Error; err != nil {
		return nil, err
	}

	return postings, nil
}

func (r *postingRepository) ListByOrganization(ctx context.Context, organizationID uint, status string) ([]models.Posting, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Posting{}).
		Where("organization_id = ?", organizationID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var postings []models.Posting
	if err := query.Order("created_at ASC").Find(&postings).Error; err != nil {
		return nil, err
	}

	return postings, nil
}

func (r *postingRepository) GetByID(ctx context.Context, id uint) (models.Posting, error) {
	var posting models.Posting
	if err := r.db.WithContext(ctx).First(&posting, id).Error; err != nil {
		return models.Posting{}, err
	}

	return posting, nil
}

func (r *postingRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&models.Posting{}).
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
