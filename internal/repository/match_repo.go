package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shanexuu/sot-command-center/internal/models"
)

// ErrDuplicateMatch indicates a match already exists for the triple. Callers
// treat it as success-equivalent when re-running a batch.
var ErrDuplicateMatch = errors.New("match already exists")

// MatchRepository persists engine-generated match suggestions.
type MatchRepository interface {
	Exists(ctx context.Context, candidateID, organizationID, postingID uint) (bool, error)
	Create(ctx context.Context, match *models.Match) error
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Match, error)
	Count(ctx context.Context) (int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository constructs a match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Exists(ctx context.Context, candidateID, organizationID, postingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("candidate_id = ? AND organization_id = ? AND posting_id = ?", candidateID, organizationID, postingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateMatch
		}
		return err
	}

	return nil
}

func (r *matchRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("score DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *matchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Match{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
