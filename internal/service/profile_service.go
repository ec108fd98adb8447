package service

import (
	"context"
	"log"
	"strings"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName  *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type ProfileView struct {
	Username string              `json:"username"`
	Profile  *model.Profile      `json:"profile"`
	Status   *GamificationStatus `json:"gamification"`
	Badges   []BadgeWithStatus   `json:"badges"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.Profile, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	gamification GamificationService
	badgeService BadgeService
	badgeRepo    repository.BadgeRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	gamification GamificationService,
	badgeService BadgeService,
	badgeRepo repository.BadgeRepository,
) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		gamification: gamification,
		badgeService: badgeService,
		badgeRepo:    badgeRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status, err := s.gamification.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeService.ListBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Username: user.Username,
		Profile:  user.Profile,
		Status:   status,
		Badges:   badges,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	wasComplete := profile.IsComplete()

	fields := map[string]interface{}{}
	if input.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = *input.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfileFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !wasComplete && updated.IsComplete() {
		s.rewardFirstCompletion(ctx, userID)
	}

	return updated, nil
}

// rewardFirstCompletion awards the profile-completion points once. The earned
// badge doubles as the once-only marker, so re-emptying and refilling the
// profile cannot farm points.
func (s *profileService) rewardFirstCompletion(ctx context.Context, userID uuid.UUID) {
	earnedIDs, err := s.badgeRepo.ListEarnedBadgeIDs(ctx, userID)
	if err != nil {
		log.Printf("profile: failed to check earned badges for user %s: %v", userID, err)
		return
	}
	for _, id := range earnedIDs {
		if id == "complete_profile" {
			return
		}
	}

	if _, err := s.gamification.AwardPoints(ctx, userID, SourceProfileCompleted, nil); err != nil {
		log.Printf("profile: failed to award completion points for user %s: %v", userID, err)
	}

	if _, err := s.badgeService.SweepBadges(ctx, userID); err != nil {
		log.Printf("profile: badge sweep failed for user %s: %v", userID, err)
	}
}
