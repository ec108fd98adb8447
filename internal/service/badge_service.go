package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
)

// BadgeWithStatus is a catalog badge annotated with the caller's earned state.
type BadgeWithStatus struct {
	Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

type BadgeService interface {
	SweepBadges(ctx context.Context, userID uuid.UUID) ([]Badge, error)
	ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeWithStatus, error)
}

type badgeService struct {
	badgeRepo    repository.BadgeRepository
	statsService StatsService
	catalog      *BadgeCatalog
	notification NotificationService
}

func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	statsService StatsService,
	catalog *BadgeCatalog,
	notification NotificationService,
) BadgeService {
	return &badgeService{
		badgeRepo:    badgeRepo,
		statsService: statsService,
		catalog:      catalog,
		notification: notification,
	}
}

// SweepBadges compares the user's current stats against the catalog and
// persists any newly earned badges. Idempotent: a second sweep with no new
// activity awards nothing. A failed insert for one badge does not stop the
// others; a duplicate conflict just means the badge was already awarded.
func (s *badgeService) SweepBadges(ctx context.Context, userID uuid.UUID) ([]Badge, error) {
	stats := s.statsService.GetUserStats(ctx, userID)

	earnedIDs, err := s.badgeRepo.ListEarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var newlyAwarded []Badge
	for _, badge := range s.catalog.Badges() {
		if earned[badge.ID] {
			continue
		}
		if !s.catalog.IsEligible(badge, stats) {
			continue
		}

		err := s.badgeRepo.Insert(ctx, &model.EarnedBadge{
			UserID:  userID,
			BadgeID: badge.ID,
		})
		if errors.Is(err, apperror.ErrDuplicateBadge) {
			continue
		}
		if err != nil {
			log.Printf("badges: failed to award %s to user %s: %v", badge.ID, userID, err)
			continue
		}

		newlyAwarded = append(newlyAwarded, badge)
		s.notifyBadgeEarned(ctx, userID, badge)
	}

	return newlyAwarded, nil
}

func (s *badgeService) ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeWithStatus, error) {
	earned, err := s.badgeRepo.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		earnedAt[e.BadgeID] = e.AwardedAt
	}

	badges := make([]BadgeWithStatus, 0, len(s.catalog.Badges()))
	for _, badge := range s.catalog.Badges() {
		entry := BadgeWithStatus{Badge: badge}
		if at, ok := earnedAt[badge.ID]; ok {
			entry.Earned = true
			at := at
			entry.EarnedAt = &at
		}
		badges = append(badges, entry)
	}

	return badges, nil
}

func (s *badgeService) notifyBadgeEarned(ctx context.Context, userID uuid.UUID, badge Badge) {
	if s.notification == nil {
		return
	}

	notification := &model.Notification{
		UserID:  userID,
		Type:    "badge_earned",
		Message: fmt.Sprintf("🏅 You earned the \"%s\" badge: %s", badge.Name, badge.Description),
	}

	if err := s.notification.CreateNotification(ctx, notification); err != nil {
		log.Printf("badges: failed to send badge notification to user %s: %v", userID, err)
	}
}
