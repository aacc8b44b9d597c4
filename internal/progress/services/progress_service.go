package services

import (
	"context"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/modules"
	"github.com/architect/kidlearn/internal/progress/cache"
	"github.com/architect/kidlearn/internal/progress/models"
	"github.com/architect/kidlearn/internal/progress/repository"
	usermodels "github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/pkg/timeutil"
)

// UserDirectory resolves user ids to directory entries. Implemented by the
// users service.
type UserDirectory interface {
	FindUser(ctx context.Context, id string) (*usermodels.User, error)
}

// AnalyticsTracker is the slice of the analytics engine the progress store
// drives: analytics are re-initialized on every progress reset and removed
// when the user goes away.
type AnalyticsTracker interface {
	Initialize(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID string) error
}

// Service implements the progress store and the star reward rules.
type Service struct {
	repo      repository.Repository
	users     UserDirectory
	analytics AnalyticsTracker
	cache     *cache.LeaderboardCache
	clock     timeutil.Clock
}

func NewService(repo repository.Repository, users UserDirectory, analytics AnalyticsTracker, lbCache *cache.LeaderboardCache, clock timeutil.Clock) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		analytics: analytics,
		cache:     lbCache,
		clock:     clock,
	}
}

// GetProgress returns the user's progress record, vivifying a zeroed record
// on first touch.
func (s *Service) GetProgress(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	if _, err := s.users.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// ApplyModuleProgress records a new progress percentage for one module and
// awards stars for the increase plus a one-time completion bonus.
func (s *Service) ApplyModuleProgress(ctx context.Context, userID, module string, progressValue int, isCompleted bool) (*models.ProgressRecord, error) {
	if _, err := s.users.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	if !modules.Valid(module) {
		return nil, errors.BadRequest("unknown module: " + module)
	}

	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := record.Modules[module]
	record.Stars += starsForUpdate(previous, progressValue, isCompleted)
	record.Modules[module] = models.ModuleProgress{
		Progress:  progressValue,
		Completed: isCompleted,
	}
	record.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return record, nil
}

// ResetProgress replaces the record with zeroed defaults and re-initializes
// the user's analytics. Idempotent.
func (s *Service) ResetProgress(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	if _, err := s.users.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.Initialize(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// Initialize writes a fresh zeroed record and resets analytics. Used both by
// ResetProgress and by the user directory on account creation.
func (s *Service) Initialize(ctx context.Context, userID string) error {
	record := models.NewProgressRecord(userID)
	record.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, record); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	return s.analytics.Initialize(ctx, userID)
}

// Remove deletes the user's progress and analytics records. Called by the
// user directory when an account is deleted.
func (s *Service) Remove(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	return s.analytics.Remove(ctx, userID)
}

// GetLeaderboard returns the top users by stars, annotated with directory
// details. Ties are broken by user ID so the ordering is deterministic.
func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if entries := s.cache.Get(ctx, limit); entries != nil {
		return entries, nil
	}

	records, err := s.repo.TopByStars(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, len(records))
	for i, record := range records {
		entry := models.LeaderboardEntry{
			UserID:   record.UserID,
			Name:     "Unknown User",
			AgeGroup: "unknown",
			Stars:    record.Stars,
		}
		if user, err := s.users.FindUser(ctx, record.UserID); err == nil {
			entry.Name = user.Name
			entry.AgeGroup = user.AgeGroup
		}
		entries[i] = entry
	}

	s.cache.Set(ctx, limit, entries)
	return entries, nil
}
