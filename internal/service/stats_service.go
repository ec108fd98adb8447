package service

import (
	"context"
	"log"

	"anoa.com/communityhub/internal/repository"
	"github.com/google/uuid"
)

// UserStatsSnapshot is a point-in-time view of a user's activity, recomputed
// on demand and never cached.
type UserStatsSnapshot struct {
	PostCount          int  `json:"post_count"`
	CommentCount       int  `json:"comment_count"`
	CommunityPostCount int  `json:"community_post_count"`
	Points             int  `json:"points"`
	CurrentStreak      int  `json:"current_streak"`
	MaxStreak          int  `json:"max_streak"`
	ProfileComplete    bool `json:"profile_complete"`
}

type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) UserStatsSnapshot
}

type statsService struct {
	userRepo      repository.UserRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	communityRepo repository.CommunityRepository
}

func NewStatsService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	communityRepo repository.CommunityRepository,
) StatsService {
	return &statsService{
		userRepo:      userRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		communityRepo: communityRepo,
	}
}

// GetUserStats aggregates activity counts from the individual stores.
// Each read is fail-soft: a failed count degrades to zero instead of failing
// the snapshot, so gamification never blocks the action that triggered it.
func (s *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) UserStatsSnapshot {
	var stats UserStatsSnapshot

	if count, err := s.postRepo.CountPublishedByAuthor(ctx, userID); err != nil {
		log.Printf("stats: failed to count posts for user %s: %v", userID, err)
	} else {
		stats.PostCount = int(count)
	}

	if count, err := s.commentRepo.CountByAuthor(ctx, userID); err != nil {
		log.Printf("stats: failed to count comments for user %s: %v", userID, err)
	} else {
		stats.CommentCount = int(count)
	}

	if count, err := s.communityRepo.CountByAuthor(ctx, userID); err != nil {
		log.Printf("stats: failed to count community posts for user %s: %v", userID, err)
	} else {
		stats.CommunityPostCount = int(count)
	}

	if profile, err := s.userRepo.FindProfile(ctx, userID); err != nil {
		log.Printf("stats: failed to read profile for user %s: %v", userID, err)
	} else {
		stats.Points = profile.Points
		stats.CurrentStreak = profile.CurrentStreak
		stats.MaxStreak = profile.MaxStreak
		stats.ProfileComplete = profile.IsComplete()
	}

	return stats
}
