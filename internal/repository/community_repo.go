package repository

import (
	"context"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityRepository interface {
	Create(ctx context.Context, post *model.CommunityPost) error
	List(ctx context.Context, limit, offset int) ([]model.CommunityPost, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, post *model.CommunityPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *communityRepository) List(ctx context.Context, limit, offset int) ([]model.CommunityPost, error) {
	var posts []model.CommunityPost
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *communityRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CommunityPost{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
