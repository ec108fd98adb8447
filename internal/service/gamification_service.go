package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
)

const (
	SourcePostPublished      = "post_published"
	SourceCommentAdded       = "comment_added"
	SourceCommunityPostAdded = "community_post_added"
	SourceProfileCompleted   = "profile_completed"
	SourceDailyLogin         = "daily_login"
)

// PointValues maps award sources to point amounts. Built once at startup.
type PointValues struct {
	values map[string]int
}

func DefaultPointValues() *PointValues {
	return &PointValues{
		values: map[string]int{
			SourcePostPublished:      25,
			SourceCommentAdded:       10,
			SourceCommunityPostAdded: 15,
			SourceProfileCompleted:   20,
		},
	}
}

func (p *PointValues) Lookup(source string) (int, bool) {
	v, ok := p.values[source]
	return v, ok
}

type AwardResult struct {
	Source      string `json:"source"`
	Awarded     int    `json:"awarded"`
	NewTotal    int    `json:"new_total"`
	RankChanged bool   `json:"rank_changed"`
	NewRank     string `json:"new_rank"`
}

type DailyLoginResult struct {
	AlreadyClaimed bool    `json:"already_claimed"`
	Streak         int     `json:"streak"`
	PointsAwarded  int     `json:"points_awarded"`
	NewTotal       int     `json:"new_total"`
	RankChanged    bool    `json:"rank_changed"`
	NewRank        string  `json:"new_rank"`
	NewBadges      []Badge `json:"new_badges,omitempty"`
}

type GamificationStatus struct {
	RankName      string  `json:"rank_name"`
	NextRank      string  `json:"next_rank"`
	CurrentPoints int     `json:"current_points"`
	TargetPoints  int     `json:"target_points"`
	Progress      float64 `json:"progress"`
	CurrentStreak int     `json:"current_streak"`
	MaxStreak     int     `json:"max_streak"`
}

type GamificationService interface {
	AwardPoints(ctx context.Context, userID uuid.UUID, source string, override *int) (*AwardResult, error)
	AwardPointsAsync(userID uuid.UUID, source string)
	ClaimDailyLogin(ctx context.Context, userID uuid.UUID) (*DailyLoginResult, error)
	GetStatus(ctx context.Context, userID uuid.UUID) (*GamificationStatus, error)
	GetPointHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error)
}

type gamificationService struct {
	userRepo     repository.UserRepository
	pointLogRepo repository.PointLogRepository
	ranks        *RankTable
	points       *PointValues
	badgeService BadgeService
	notification NotificationService

	dailyLoginBase        int
	streakBonusMultiplier float64

	now func() time.Time
}

func NewGamificationService(
	userRepo repository.UserRepository,
	pointLogRepo repository.PointLogRepository,
	ranks *RankTable,
	points *PointValues,
	badgeService BadgeService,
	notification NotificationService,
	dailyLoginBase int,
	streakBonusMultiplier float64,
) GamificationService {
	return &gamificationService{
		userRepo:              userRepo,
		pointLogRepo:          pointLogRepo,
		ranks:                 ranks,
		points:                points,
		badgeService:          badgeService,
		notification:          notification,
		dailyLoginBase:        dailyLoginBase,
		streakBonusMultiplier: streakBonusMultiplier,
		now:                   time.Now,
	}
}

// AwardPoints adds points from a known source (or an explicit override) to
// the user's total and recomputes the rank. The read and the write are two
// round trips with no locking: concurrent awards for the same user can lose
// an increment under last-write-wins. Accepted, not worth a transaction at
// the rates this is called.
func (s *gamificationService) AwardPoints(ctx context.Context, userID uuid.UUID, source string, override *int) (*AwardResult, error) {
	amount, ok := s.points.Lookup(source)
	if override != nil {
		amount = *override
	} else if !ok {
		return nil, apperror.ErrInvalidPointSource
	}

	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	newPoints := profile.Points + amount
	newTier := s.ranks.RankForPoints(newPoints)
	rankChanged := newTier.Name != profile.Rank

	fields := map[string]interface{}{"points": newPoints}
	if rankChanged {
		fields["rank"] = newTier.Name
	}

	if err := s.userRepo.UpdateProfileFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	if err := s.pointLogRepo.Create(ctx, &model.PointLog{
		UserID: userID,
		Source: source,
		Points: amount,
	}); err != nil {
		// The award itself landed; the history row is best effort.
		log.Printf("gamification: failed to log %d points (%s) for user %s: %v", amount, source, userID, err)
	}

	if rankChanged {
		s.notifyRankUp(ctx, userID, profile.Rank, newTier.Name, newPoints)
	}

	return &AwardResult{
		Source:      source,
		Awarded:     amount,
		NewTotal:    newPoints,
		RankChanged: rankChanged,
		NewRank:     newTier.Name,
	}, nil
}

// AwardPointsAsync awards points in the background and reconciles badges
// afterwards. Used by the content services so a gamification failure never
// blocks the post or comment that triggered it.
func (s *gamificationService) AwardPointsAsync(userID uuid.UUID, source string) {
	go func() {
		ctx := context.Background()

		if _, err := s.AwardPoints(ctx, userID, source, nil); err != nil {
			log.Printf("gamification: async award (%s) failed for user %s: %v", source, userID, err)
			return
		}

		if _, err := s.badgeService.SweepBadges(ctx, userID); err != nil {
			log.Printf("gamification: badge sweep failed for user %s: %v", userID, err)
		}
	}()
}

// ClaimDailyLogin extends or resets the login streak and awards a
// streak-scaled bonus, at most once per UTC calendar day. Consecutiveness is
// calendar-date equality, not a 24h interval: 23:59 then 00:01 the next day
// still advances the streak.
func (s *gamificationService) ClaimDailyLogin(ctx context.Context, userID uuid.UUID) (*DailyLoginResult, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.now().UTC())

	if profile.LastLoginDate != nil && sameDay(*profile.LastLoginDate, today) {
		return &DailyLoginResult{
			AlreadyClaimed: true,
			Streak:         profile.CurrentStreak,
			NewTotal:       profile.Points,
			NewRank:        profile.Rank,
		}, nil
	}

	newStreak := 1
	if profile.LastLoginDate != nil && sameDay(*profile.LastLoginDate, today.AddDate(0, 0, -1)) {
		newStreak = profile.CurrentStreak + 1
	}

	bonus := int(math.Floor(float64(s.dailyLoginBase) * (1 + float64(newStreak-1)*s.streakBonusMultiplier)))
	newPoints := profile.Points + bonus
	newMaxStreak := profile.MaxStreak
	if newStreak > newMaxStreak {
		newMaxStreak = newStreak
	}
	newTier := s.ranks.RankForPoints(newPoints)
	rankChanged := newTier.Name != profile.Rank

	if err := s.userRepo.UpdateProfileFields(ctx, userID, map[string]interface{}{
		"last_login_date": today,
		"current_streak":  newStreak,
		"max_streak":      newMaxStreak,
		"points":          newPoints,
		"rank":            newTier.Name,
	}); err != nil {
		return nil, err
	}

	if err := s.pointLogRepo.Create(ctx, &model.PointLog{
		UserID: userID,
		Source: SourceDailyLogin,
		Points: bonus,
	}); err != nil {
		log.Printf("gamification: failed to log daily login bonus for user %s: %v", userID, err)
	}

	if rankChanged {
		s.notifyRankUp(ctx, userID, profile.Rank, newTier.Name, newPoints)
	}

	// Reconcile badges before returning so a follow-up stats read sees any
	// streak badge earned by this claim.
	newBadges, err := s.badgeService.SweepBadges(ctx, userID)
	if err != nil {
		log.Printf("gamification: badge sweep failed for user %s: %v", userID, err)
	}

	return &DailyLoginResult{
		Streak:        newStreak,
		PointsAwarded: bonus,
		NewTotal:      newPoints,
		RankChanged:   rankChanged,
		NewRank:       newTier.Name,
		NewBadges:     newBadges,
	}, nil
}

func (s *gamificationService) GetStatus(ctx context.Context, userID uuid.UUID) (*GamificationStatus, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := s.ranks.RankForPoints(profile.Points)
	status := &GamificationStatus{
		RankName:      current.Name,
		CurrentPoints: profile.Points,
		Progress:      s.ranks.ProgressFraction(profile.Points),
		CurrentStreak: profile.CurrentStreak,
		MaxStreak:     profile.MaxStreak,
	}

	if next, ok := s.ranks.NextRank(current); ok {
		status.NextRank = next.Name
		status.TargetPoints = next.MinPoints
	} else {
		status.NextRank = "Max Level"
		status.TargetPoints = current.MinPoints
	}

	return status, nil
}

func (s *gamificationService) GetPointHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error) {
	return s.pointLogRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *gamificationService) notifyRankUp(ctx context.Context, userID uuid.UUID, previousRank, newRank string, newScore int) {
	if s.notification == nil {
		return
	}

	notification := &model.Notification{
		UserID:  userID,
		Type:    "rank_up",
		Message: fmt.Sprintf("🎉 Congratulations! You ranked up from %s to %s with %d points!", previousRank, newRank, newScore),
	}

	if err := s.notification.CreateNotification(ctx, notification); err != nil {
		log.Printf("gamification: failed to send rank up notification to user %s: %v", userID, err)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
