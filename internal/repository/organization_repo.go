package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shanexuu/sot-command-center/internal/models"
)

// OrganizationRepository provides read access to organizations.
type OrganizationRepository interface {
	ListByStatus(ctx context.Context, status string) ([]models.Organization, error)
	GetByID(ctx context.Context, id uint) (models.Organization, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository constructs an organization repository.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) ListByStatus(ctx context.Context, status string) ([]models.Organization, error) {
	query := r.db.WithContext(ctx).Model(&models.Organization{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var organizations []models.Organization
	if err := query.Order("created_at ASC").Find(&organizations).Error; err != nil {
		return nil, err
	}

	return organizations, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (models.Organization, error) {
	var organization models.Organization
	if err := r.db.WithContext(ctx).First(&organization, id).Error; err != nil {
		return models.Organization{}, err
	}

	return organization, nil
}
