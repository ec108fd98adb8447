package service

import (
	"context"
	"testing"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestGetUserStatsCombinesReads(t *testing.T) {
	userID := uuid.New()

	userRepo := newFakeUserRepo()
	userRepo.profiles[userID] = &model.Profile{
		UserID:        userID,
		FullName:      "Jamie",
		Bio:           strp("hello"),
		AvatarURL:     strp("https://cdn.example/avatar.png"),
		Points:        320,
		CurrentStreak: 3,
		MaxStreak:     9,
	}

	svc := NewStatsService(
		userRepo,
		&fakePostRepo{counts: map[uuid.UUID]int64{userID: 4}},
		&fakeCommentRepo{counts: map[uuid.UUID]int64{userID: 11}},
		&fakeCommunityRepo{counts: map[uuid.UUID]int64{userID: 2}},
	)

	stats := svc.GetUserStats(context.Background(), userID)

	if stats.PostCount != 4 || stats.CommentCount != 11 || stats.CommunityPostCount != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Points != 320 || stats.CurrentStreak != 3 || stats.MaxStreak != 9 {
		t.Fatalf("unexpected profile fields: %+v", stats)
	}
	if !stats.ProfileComplete {
		t.Fatal("profile with name, bio and avatar must count as complete")
	}
}

func TestGetUserStatsFailSoft(t *testing.T) {
	userID := uuid.New()

	userRepo := newFakeUserRepo()
	userRepo.profiles[userID] = &model.Profile{UserID: userID, Points: 50}

	svc := NewStatsService(
		userRepo,
		&fakePostRepo{err: errStore},
		&fakeCommentRepo{counts: map[uuid.UUID]int64{userID: 7}},
		&fakeCommunityRepo{err: errStore},
	)

	stats := svc.GetUserStats(context.Background(), userID)

	// Failed reads degrade to zero; the successful ones survive
	if stats.PostCount != 0 || stats.CommunityPostCount != 0 {
		t.Fatalf("failed reads should degrade to zero: %+v", stats)
	}
	if stats.CommentCount != 7 {
		t.Fatalf("comment count = %d, want 7", stats.CommentCount)
	}
	if stats.Points != 50 {
		t.Fatalf("points = %d, want 50", stats.Points)
	}
}

func TestGetUserStatsProfileUnavailable(t *testing.T) {
	userID := uuid.New()

	userRepo := newFakeUserRepo()
	userRepo.findErr = errStore

	svc := NewStatsService(
		userRepo,
		&fakePostRepo{counts: map[uuid.UUID]int64{userID: 1}},
		&fakeCommentRepo{counts: map[uuid.UUID]int64{}},
		&fakeCommunityRepo{counts: map[uuid.UUID]int64{}},
	)

	stats := svc.GetUserStats(context.Background(), userID)

	if stats.Points != 0 || stats.ProfileComplete {
		t.Fatalf("profile read failure should zero the profile fields: %+v", stats)
	}
	if stats.PostCount != 1 {
		t.Fatalf("independent reads must still land: %+v", stats)
	}
}

func TestProfileCompletePredicate(t *testing.T) {
	cases := []struct {
		name    string
		profile model.Profile
		want    bool
	}{
		{"all set", model.Profile{FullName: "A", Bio: strp("b"), AvatarURL: strp("c")}, true},
		{"missing name", model.Profile{Bio: strp("b"), AvatarURL: strp("c")}, false},
		{"nil bio", model.Profile{FullName: "A", AvatarURL: strp("c")}, false},
		{"empty bio", model.Profile{FullName: "A", Bio: strp(""), AvatarURL: strp("c")}, false},
		{"missing avatar", model.Profile{FullName: "A", Bio: strp("b")}, false},
	}

	for _, tc := range cases {
		if got := tc.profile.IsComplete(); got != tc.want {
			t.Errorf("%s: IsComplete() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
