package repository

import (
	"context"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PointLogRepository interface {
	Create(ctx context.Context, log *model.PointLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error)
}

type pointLogRepository struct {
	db *gorm.DB
}

func NewPointLogRepository(db *gorm.DB) PointLogRepository {
	return &pointLogRepository{db: db}
}

func (r *pointLogRepository) Create(ctx context.Context, log *model.PointLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *pointLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error) {
	var logs []model.PointLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}
