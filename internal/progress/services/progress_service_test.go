package services

import (
	"context"
	"testing"
	"time"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/modules"
	"github.com/architect/kidlearn/internal/progress/models"
	"github.com/architect/kidlearn/internal/progress/repository"
	usermodels "github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/stretchr/testify/assert"
)

type stubDirectory struct {
	users map[string]*usermodels.User
}

func (d *stubDirectory) FindUser(_ context.Context, id string) (*usermodels.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, errors.NotFound("user")
	}
	return user, nil
}

type stubAnalytics struct {
	initialized []string
	removed     []string
}

func (a *stubAnalytics) Initialize(_ context.Context, userID string) error {
	a.initialized = append(a.initialized, userID)
	return nil
}

func (a *stubAnalytics) Remove(_ context.Context, userID string) error {
	a.removed = append(a.removed, userID)
	return nil
}

func newTestService(userIDs ...string) (*Service, *stubAnalytics) {
	directory := &stubDirectory{users: make(map[string]*usermodels.User)}
	for _, id := range userIDs {
		directory.users[id] = &usermodels.User{
			ID:       id,
			Name:     "Child " + id,
			AgeGroup: usermodels.AgeGroupPreStudents,
		}
	}
	analytics := &stubAnalytics{}
	clock := timeutil.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(repository.NewMemoryRepository(), directory, analytics, nil, clock), analytics
}

func TestApplyModuleProgress_StarMath(t *testing.T) {
	service, _ := newTestService("u1")
	ctx := context.Background()

	record, err := service.ApplyModuleProgress(ctx, "u1", modules.Math, 35, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, record.Stars)
	assert.Equal(t, 35, record.Modules[modules.Math].Progress)
	assert.False(t, record.Modules[modules.Math].Completed)

	record, err = service.ApplyModuleProgress(ctx, "u1", modules.Math, 100, true)
	assert.NoError(t, err)
	// floor((100-35)/10) + 5 completion bonus = 11 more stars
	assert.Equal(t, 14, record.Stars)
	assert.True(t, record.Modules[modules.Math].Completed)
}

func TestApplyModuleProgress_MonotonicStars(t *testing.T) {
	service, _ := newTestService("u1")
	ctx := context.Background()

	previousStars := 0
	for _, value := range []int{10, 10, 25, 40, 40, 95, 100} {
		record, err := service.ApplyModuleProgress(ctx, "u1", modules.Alphabet, value, false)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, record.Stars, previousStars)
		previousStars = record.Stars
	}
}

func TestApplyModuleProgress_DecreaseNotRewarded(t *testing.T) {
	service, _ := newTestService("u1")
	ctx := context.Background()

	record, err := service.ApplyModuleProgress(ctx, "u1", modules.Counting, 50, false)
	assert.NoError(t, err)
	assert.Equal(t, 5, record.Stars)

	// Decreases are allowed, stored, and not rewarded
	record, err = service.ApplyModuleProgress(ctx, "u1", modules.Counting, 20, false)
	assert.NoError(t, err)
	assert.Equal(t, 5, record.Stars)
	assert.Equal(t, 20, record.Modules[modules.Counting].Progress)
}

func TestApplyModuleProgress_CompletionBonusOnlyOnce(t *testing.T) {
	service, _ := newTestService("u1")
	ctx := context.Background()

	record, err := service.ApplyModuleProgress(ctx, "u1", modules.Images, 100, true)
	assert.NoError(t, err)
	assert.Equal(t, 15, record.Stars)

	record, err = service.ApplyModuleProgress(ctx, "u1", modules.Images, 100, true)
	assert.NoError(t, err)
	assert.Equal(t, 15, record.Stars)
}

func TestApplyModuleProgress_RoundTrip(t *testing.T) {
	service, _ := newTestService("u1")
	ctx := context.Background()

	written, err := service.ApplyModuleProgress(ctx, "u1", modules.Sentences, 42, false)
	assert.NoError(t, err)

	read, err := service.GetProgress(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, written.Stars, read.Stars)
	assert.Equal(t, written.Modules, read.Modules)
}

func TestApplyModuleProgress_UnknownModule(t *testing.T) {
	service, _ := newTestService("u1")

	record, err := service.ApplyModuleProgress(context.Background(), "u1", "astronomy", 50, false)
	assert.Nil(t, record)
	assert.NotNil(t, err)
	assert.Equal(t, errors.CodeBadRequest, err.(*errors.AppError).Code)
}

func TestApplyModuleProgress_UnknownUser(t *testing.T) {
	service, _ := newTestService("u1")

	record, err := service.ApplyModuleProgress(context.Background(), "nobody", modules.Math, 50, false)
	assert.Nil(t, record)
	assert.NotNil(t, err)
	assert.Equal(t, errors.CodeNotFound, err.(*errors.AppError).Code)
}

func TestGetProgress_VivifiesDefaults(t *testing.T) {
	service, _ := newTestService("u1")

	record, err := service.GetProgress(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, 0, record.Stars)
	assert.Len(t, record.Modules, 5)
	for _, name := range modules.All() {
		assert.Equal(t, models.ModuleProgress{}, record.Modules[name])
	}
}

func TestResetProgress_Idempotent(t *testing.T) {
	service, analytics := newTestService("u1")
	ctx := context.Background()

	_, err := service.ApplyModuleProgress(ctx, "u1", modules.Math, 80, false)
	assert.NoError(t, err)

	first, err := service.ResetProgress(ctx, "u1")
	assert.NoError(t, err)
	second, err := service.ResetProgress(ctx, "u1")
	assert.NoError(t, err)

	assert.Equal(t, 0, first.Stars)
	assert.Equal(t, first.Stars, second.Stars)
	assert.Equal(t, first.Modules, second.Modules)

	// Analytics are re-initialized on every reset
	assert.Equal(t, []string{"u1", "u1"}, analytics.initialized)
}

func TestRemove_DeletesBothRecords(t *testing.T) {
	service, analytics := newTestService("u1")
	ctx := context.Background()

	_, err := service.ApplyModuleProgress(ctx, "u1", modules.Math, 30, false)
	assert.NoError(t, err)

	assert.NoError(t, service.Remove(ctx, "u1"))
	assert.Equal(t, []string{"u1"}, analytics.removed)
}

func TestGetLeaderboard_Ordering(t *testing.T) {
	service, _ := newTestService("a", "b", "c")
	ctx := context.Background()

	// stars: a=1 (10%), b=5 (50%), c=3 (30%)
	service.ApplyModuleProgress(ctx, "a", modules.Math, 10, false)
	service.ApplyModuleProgress(ctx, "b", modules.Math, 50, false)
	service.ApplyModuleProgress(ctx, "c", modules.Math, 30, false)

	leaderboard, err := service.GetLeaderboard(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, leaderboard, 2)
	assert.Equal(t, "b", leaderboard[0].UserID)
	assert.Equal(t, 5, leaderboard[0].Stars)
	assert.Equal(t, "c", leaderboard[1].UserID)
	assert.Equal(t, 3, leaderboard[1].Stars)
}

func TestGetLeaderboard_DeterministicTieBreak(t *testing.T) {
	service, _ := newTestService("b", "a", "c")
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		service.ApplyModuleProgress(ctx, id, modules.Math, 20, false)
	}

	leaderboard, err := service.GetLeaderboard(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, leaderboard, 3)
	assert.Equal(t, "a", leaderboard[0].UserID)
	assert.Equal(t, "b", leaderboard[1].UserID)
	assert.Equal(t, "c", leaderboard[2].UserID)
}

func TestGetLeaderboard_AnnotatesUnknownUsers(t *testing.T) {
	service, _ := newTestService("known")
	ctx := context.Background()

	service.ApplyModuleProgress(ctx, "known", modules.Math, 40, false)

	// A record whose user has left the directory still appears, unannotated
	assert.NoError(t, service.Initialize(ctx, "ghost"))

	leaderboard, err := service.GetLeaderboard(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, leaderboard, 2)
	assert.Equal(t, "Child known", leaderboard[0].Name)
	assert.Equal(t, "Unknown User", leaderboard[1].Name)
	assert.Equal(t, "unknown", leaderboard[1].AgeGroup)
}

func TestGetLeaderboard_LimitDefaults(t *testing.T) {
	service, _ := newTestService()

	leaderboard, err := service.GetLeaderboard(context.Background(), -5)
	assert.NoError(t, err)
	assert.Empty(t, leaderboard)

	leaderboard, err = service.GetLeaderboard(context.Background(), 500)
	assert.NoError(t, err)
	assert.Empty(t, leaderboard)
}

func TestStarsForUpdate(t *testing.T) {
	// No increase, no completion: nothing earned
	assert.Equal(t, 0, starsForUpdate(models.ModuleProgress{Progress: 50}, 50, false))
	// Partial tens floor down
	assert.Equal(t, 1, starsForUpdate(models.ModuleProgress{Progress: 0}, 19, false))
	// Completion bonus stacks with progress stars
	assert.Equal(t, 11, starsForUpdate(models.ModuleProgress{Progress: 35}, 100, true))
	// Bonus is one-time
	assert.Equal(t, 0, starsForUpdate(models.ModuleProgress{Progress: 100, Completed: true}, 100, true))
	// Decrease never subtracts
	assert.Equal(t, 0, starsForUpdate(models.ModuleProgress{Progress: 90}, 10, false))
}
