package repository

import (
	"context"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	ListEarnedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]model.EarnedBadge, error)
	Insert(ctx context.Context, earned *model.EarnedBadge) error
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListEarnedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.EarnedBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *badgeRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]model.EarnedBadge, error) {
	var earned []model.EarnedBadge
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&earned).Error; err != nil {
		return nil, err
	}

	return earned, nil
}

// Insert creates the earned-badge row. A conflict on (user_id, badge_id)
// means the badge was already awarded and is reported as ErrDuplicateBadge.
func (r *badgeRepository) Insert(ctx context.Context, earned *model.EarnedBadge) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(earned)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrDuplicateBadge
	}
	return nil
}
