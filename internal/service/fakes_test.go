package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
)

var errStore = errors.New("store unavailable")

type fakeUserRepo struct {
	profiles    map[uuid.UUID]*model.Profile
	findErr     error
	updateErr   error
	updateCalls int
	lastFields  map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeUserRepo) FindProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfileFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return apperror.ErrNotFound
	}
	f.updateCalls++
	f.lastFields = fields

	for key, value := range fields {
		switch key {
		case "points":
			profile.Points = value.(int)
		case "rank":
			profile.Rank = value.(string)
		case "current_streak":
			profile.CurrentStreak = value.(int)
		case "max_streak":
			profile.MaxStreak = value.(int)
		case "last_login_date":
			d := value.(time.Time)
			profile.LastLoginDate = &d
		case "full_name":
			profile.FullName = value.(string)
		case "bio":
			v := value.(string)
			profile.Bio = &v
		case "avatar_url":
			v := value.(string)
			profile.AvatarURL = &v
		}
	}
	return nil
}

func (f *fakeUserRepo) TopProfilesByPoints(ctx context.Context, limit int) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

type fakePostRepo struct {
	counts map[uuid.UUID]int64
	err    error
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) error { return nil }

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakePostRepo) ListPublished(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) CountPublishedByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[authorID], nil
}

type fakeCommentRepo struct {
	counts map[uuid.UUID]int64
	err    error
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error { return nil }

func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[authorID], nil
}

type fakeCommunityRepo struct {
	counts map[uuid.UUID]int64
	err    error
}

func (f *fakeCommunityRepo) Create(ctx context.Context, post *model.CommunityPost) error { return nil }

func (f *fakeCommunityRepo) List(ctx context.Context, limit, offset int) ([]model.CommunityPost, error) {
	return nil, nil
}

func (f *fakeCommunityRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[authorID], nil
}

type fakeBadgeRepo struct {
	earned     map[uuid.UUID]map[string]time.Time
	listErr    error
	insertErrs map[string]error // per badge ID
	inserts    []string
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{
		earned:     make(map[uuid.UUID]map[string]time.Time),
		insertErrs: make(map[string]error),
	}
}

func (f *fakeBadgeRepo) ListEarnedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []string
	for id := range f.earned[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeBadgeRepo) ListEarned(ctx context.Context, userID uuid.UUID) ([]model.EarnedBadge, error) {
	var out []model.EarnedBadge
	for id, at := range f.earned[userID] {
		out = append(out, model.EarnedBadge{UserID: userID, BadgeID: id, AwardedAt: at})
	}
	return out, nil
}

func (f *fakeBadgeRepo) Insert(ctx context.Context, earned *model.EarnedBadge) error {
	if err, ok := f.insertErrs[earned.BadgeID]; ok {
		return err
	}
	if f.earned[earned.UserID] == nil {
		f.earned[earned.UserID] = make(map[string]time.Time)
	}
	if _, exists := f.earned[earned.UserID][earned.BadgeID]; exists {
		return apperror.ErrDuplicateBadge
	}
	f.earned[earned.UserID][earned.BadgeID] = time.Now()
	f.inserts = append(f.inserts, earned.BadgeID)
	return nil
}

type fakePointLogRepo struct {
	logs []model.PointLog
}

func (f *fakePointLogRepo) Create(ctx context.Context, log *model.PointLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakePointLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointLog, error) {
	return f.logs, nil
}

type fakeBadgeService struct {
	sweeps int
}

func (f *fakeBadgeService) SweepBadges(ctx context.Context, userID uuid.UUID) ([]Badge, error) {
	f.sweeps++
	return nil, nil
}

func (f *fakeBadgeService) ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeWithStatus, error) {
	return nil, nil
}

// fixedStats lets badge service tests pin the snapshot directly.
type fixedStats struct {
	stats UserStatsSnapshot
}

func (f *fixedStats) GetUserStats(ctx context.Context, userID uuid.UUID) UserStatsSnapshot {
	return f.stats
}
