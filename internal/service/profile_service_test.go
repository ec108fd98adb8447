package service

import (
	"context"
	"testing"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
)

type fakeGamification struct {
	awards []string
}

func (f *fakeGamification) AwardPoints(ctx context.Context, userID uuid.UUID, source string, override *int) (*AwardResult, error) {
	f.awards = append(f.awards, source)
	return &AwardResult{Source: source}, nil
}

func (f *fakeGamification) AwardPointsAsync(userID uuid.UUID, source string) {
	f.awards = append(f.awards, source)
}

func (f *fakeGamification) ClaimDailyLogin(ctx context.Context, userID uuid.UUID) (*DailyLoginResult, error) {
	return &DailyLoginResult{}, nil
}

func (f *fakeGamification) GetStatus(ctx context.Context, userID uuid.UUID) (*GamificationStatus, error) {
	return &GamificationStatus{}, nil
}

func (f *fakeGamification) GetPointHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error) {
	return nil, nil
}

func TestUpdateProfileAwardsCompletionOnce(t *testing.T) {
	userRepo := newFakeUserRepo()
	userID := uuid.New()
	userRepo.profiles[userID] = &model.Profile{UserID: userID, FullName: "Jamie"}

	badgeRepo := newFakeBadgeRepo()
	gamification := &fakeGamification{}
	badgeSvc := NewBadgeService(badgeRepo, &fixedStats{}, DefaultBadgeCatalog(), nil)
	svc := NewProfileService(userRepo, gamification, badgeSvc, badgeRepo)

	bio := "Building things"
	avatar := "https://cdn.example/a.png"
	if _, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{Bio: &bio, AvatarURL: &avatar}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if len(gamification.awards) != 1 || gamification.awards[0] != SourceProfileCompleted {
		t.Fatalf("awards = %v, want one profile_completed", gamification.awards)
	}

	// A later edit on an already complete profile awards nothing more
	newBio := "Still building things"
	if _, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{Bio: &newBio}); err != nil {
		t.Fatal(err)
	}
	if len(gamification.awards) != 1 {
		t.Fatalf("completion awarded twice: %v", gamification.awards)
	}
}

func TestUpdateProfileCompletionGuardedByBadge(t *testing.T) {
	userRepo := newFakeUserRepo()
	userID := uuid.New()
	userRepo.profiles[userID] = &model.Profile{UserID: userID, FullName: "Jamie"}

	badgeRepo := newFakeBadgeRepo()
	// Badge already on record from an earlier completion
	if err := badgeRepo.Insert(context.Background(), &model.EarnedBadge{UserID: userID, BadgeID: "complete_profile"}); err != nil {
		t.Fatal(err)
	}

	gamification := &fakeGamification{}
	badgeSvc := NewBadgeService(badgeRepo, &fixedStats{}, DefaultBadgeCatalog(), nil)
	svc := NewProfileService(userRepo, gamification, badgeSvc, badgeRepo)

	bio := "refilled"
	avatar := "https://cdn.example/a.png"
	if _, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{Bio: &bio, AvatarURL: &avatar}); err != nil {
		t.Fatal(err)
	}

	if len(gamification.awards) != 0 {
		t.Fatalf("re-completing a profile must not award again: %v", gamification.awards)
	}
}
