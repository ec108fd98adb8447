package service

import (
	"context"
	"log"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type CreateCommunityPostInput struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type CommunityService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreateCommunityPostInput) (*model.CommunityPost, error)
	ListFeed(ctx context.Context, limit, offset int) ([]model.CommunityPost, error)
}

type communityService struct {
	repo         repository.CommunityRepository
	gamification GamificationService
	search       SearchService
	sanitizer    *bluemonday.Policy
}

func NewCommunityService(repo repository.CommunityRepository, gamification GamificationService, search SearchService) CommunityService {
	return &communityService{
		repo:         repo,
		gamification: gamification,
		search:       search,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

func (s *communityService) CreatePost(ctx context.Context, authorID uuid.UUID, input CreateCommunityPostInput) (*model.CommunityPost, error) {
	post := &model.CommunityPost{
		AuthorID: authorID,
		Content:  s.sanitizer.Sanitize(input.Content),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexCommunityPost(post); err != nil {
			log.Printf("community: failed to index post %s: %v", post.ID, err)
		}
	}

	s.gamification.AwardPointsAsync(authorID, SourceCommunityPostAdded)

	return post, nil
}

func (s *communityService) ListFeed(ctx context.Context, limit, offset int) ([]model.CommunityPost, error) {
	return s.repo.List(ctx, limit, offset)
}
