package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"anoa.com/communityhub/internal/repository"
	"github.com/redis/go-redis/v9"
)

type LeaderboardEntry struct {
	Position  int     `json:"position"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Points    int     `json:"points"`
	RankName  string  `json:"rank_name"`
	Progress  float64 `json:"progress"`
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo    repository.UserRepository
	ranks       *RankTable
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewLeaderboardService(userRepo repository.UserRepository, ranks *RankTable, redisClient *redis.Client, cacheTTL time.Duration) LeaderboardService {
	return &leaderboardService{
		userRepo:    userRepo,
		ranks:       ranks,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	profiles, err := s.userRepo.TopProfilesByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, profile := range profiles {
		entry := LeaderboardEntry{
			Position:  i + 1,
			Points:    profile.Points,
			RankName:  s.ranks.RankForPoints(profile.Points).Name,
			Progress:  s.ranks.ProgressFraction(profile.Points),
			AvatarURL: profile.AvatarURL,
		}
		if profile.User != nil {
			entry.Username = profile.User.Username
		}
		entries = append(entries, entry)
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("leaderboard: failed to cache entries: %v", err)
			}
		}
	}

	return entries, nil
}
