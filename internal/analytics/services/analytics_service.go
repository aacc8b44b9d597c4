package services

import (
	"context"

	"github.com/architect/kidlearn/internal/analytics/models"
	"github.com/architect/kidlearn/internal/analytics/repository"
	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/modules"
	usermodels "github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/google/uuid"
)

// UserDirectory resolves user ids to directory entries. Implemented by the
// users service.
type UserDirectory interface {
	FindUser(ctx context.Context, id string) (*usermodels.User, error)
}

// Service implements the analytics store and the aggregation rules.
type Service struct {
	repo  repository.Repository
	users UserDirectory
	clock timeutil.Clock
}

func NewService(repo repository.Repository, users UserDirectory, clock timeutil.Clock) *Service {
	return &Service{repo: repo, users: users, clock: clock}
}

// Initialize replaces the user's analytics with fresh defaults. Idempotent:
// the result is the same regardless of prior state.
func (s *Service) Initialize(ctx context.Context, userID string) error {
	record := models.NewAnalyticsRecord(userID)
	record.UpdatedAt = s.clock.Now()
	return s.repo.Save(ctx, record)
}

// Remove deletes the user's analytics record.
func (s *Service) Remove(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// GetAnalytics returns the user's analytics record with directory context.
func (s *Service) GetAnalytics(ctx context.Context, userID string) (*models.UserAnalyticsResponse, error) {
	record, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.UserAnalyticsResponse{
		UserID:    userID,
		UserName:  "Unknown User",
		AgeGroup:  "unknown",
		Analytics: record,
	}
	if user, err := s.users.FindUser(ctx, userID); err == nil {
		resp.UserName = user.Name
		resp.AgeGroup = user.AgeGroup
	}
	return resp, nil
}

// StartSession increments the session counter and stamps the session start.
// Vivifies a fresh record on first touch.
func (s *Service) StartSession(ctx context.Context, userID string) (*models.SessionResponse, error) {
	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record.SessionsCount++
	record.LastSession = &now
	record.UpdatedAt = now

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	return &models.SessionResponse{
		SessionsCount: record.SessionsCount,
		LastSession:   record.LastSession,
	}, nil
}

// RecordActivity folds one activity outcome into the user's analytics and
// recomputes the derived strengths, weaknesses and learning pace over the
// whole record.
func (s *Service) RecordActivity(ctx context.Context, userID string, req *models.RecordActivityRequest) (*models.AnalyticsRecord, error) {
	if !modules.Valid(req.Module) {
		return nil, errors.BadRequest("unknown module: " + req.Module)
	}

	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ma := record.ModuleAnalytics[req.Module]
	ma.TimeSpent += req.TimeSpent
	ma.LastActivity = &now

	// Omitted isCorrect means the activity only accrues time
	if req.IsCorrect != nil {
		if *req.IsCorrect {
			ma.CorrectAnswers++
			if req.ItemID != "" && !containsString(ma.CompletedItems, req.ItemID) {
				ma.CompletedItems = append(ma.CompletedItems, req.ItemID)
			}
		} else {
			ma.IncorrectAnswers++
			if req.ChallengeArea != "" && !containsString(ma.ChallengeAreas, req.ChallengeArea) {
				ma.ChallengeAreas = append(ma.ChallengeAreas, req.ChallengeArea)
			}
		}
	}

	record.ModuleAnalytics[req.Module] = ma
	record.TotalTimeSpent += req.TimeSpent
	record.UpdatedAt = now

	recomputeDerived(record)

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AddMilestone appends a milestone with a generated id and the current
// timestamp. The milestone list is append-only.
func (s *Service) AddMilestone(ctx context.Context, userID string, req *models.AddMilestoneRequest) ([]models.Milestone, error) {
	if req.Title == "" || req.Type == "" {
		return nil, errors.BadRequest("title and type are required for a milestone")
	}

	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record.Milestones = append(record.Milestones, models.Milestone{
		ID:          uuid.NewString(),
		Date:        now,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	})
	record.UpdatedAt = now

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record.Milestones, nil
}

// GetRecommendations derives practice suggestions: weaknesses first at high
// priority, then strengths at medium. When neither exists, fall back to the
// module with the most recent activity.
func (s *Service) GetRecommendations(ctx context.Context, userID string) (*models.RecommendationsResponse, error) {
	record, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendations := []models.Recommendation{}
	for _, module := range record.Weaknesses {
		recommendations = append(recommendations, models.Recommendation{
			Module:   module,
			Reason:   "This is an area that needs improvement",
			Priority: "high",
		})
	}
	for _, module := range record.Strengths {
		recommendations = append(recommendations, models.Recommendation{
			Module:   module,
			Reason:   "This is an area of strength to build upon",
			Priority: "medium",
		})
	}

	if len(recommendations) == 0 {
		if module := mostRecentModule(record); module != "" {
			recommendations = append(recommendations, models.Recommendation{
				Module:   module,
				Reason:   "Continue with this recent activity",
				Priority: "medium",
			})
		}
	}

	return &models.RecommendationsResponse{
		Recommendations: recommendations,
		BasedOn: models.BasedOn{
			Strengths:    record.Strengths,
			Weaknesses:   record.Weaknesses,
			LearningPace: record.LearningPace,
		},
	}, nil
}

// mostRecentModule returns the module with the latest recorded activity, or
// "" when no module has any.
func mostRecentModule(record *models.AnalyticsRecord) string {
	best := ""
	var bestTime int64
	for _, name := range modules.All() {
		ma := record.ModuleAnalytics[name]
		if ma.LastActivity != nil && ma.LastActivity.UnixNano() > bestTime {
			best = name
			bestTime = ma.LastActivity.UnixNano()
		}
	}
	return best
}

// GetParentalSummary aggregates the record into the parent-facing report.
func (s *Service) GetParentalSummary(ctx context.Context, userID string) (*models.ParentalSummary, error) {
	record, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalCorrect := 0
	totalIncorrect := 0
	moduleSummaries := []models.ModuleSummary{}

	for _, name := range modules.All() {
		ma := record.ModuleAnalytics[name]
		totalCorrect += ma.CorrectAnswers
		totalIncorrect += ma.IncorrectAnswers

		// Only report modules the child actually answered in
		if ma.CorrectAnswers == 0 && ma.IncorrectAnswers == 0 {
			continue
		}
		moduleSummaries = append(moduleSummaries, models.ModuleSummary{
			Name:             name,
			TimeSpent:        ma.TimeSpent,
			CorrectAnswers:   ma.CorrectAnswers,
			IncorrectAnswers: ma.IncorrectAnswers,
			Accuracy:         roundPercent(ma.CorrectAnswers, ma.CorrectAnswers+ma.IncorrectAnswers),
			ChallengeAreas:   ma.ChallengeAreas,
			LastActivity:     ma.LastActivity,
		})
	}

	return &models.ParentalSummary{
		ChildName: user.Name,
		AgeGroup:  user.AgeGroup,
		OverallSummary: models.OverallSummary{
			TotalSessions:         record.SessionsCount,
			TotalTimeSpent:        record.TotalTimeSpent,
			LastSession:           record.LastSession,
			TotalCorrectAnswers:   totalCorrect,
			TotalIncorrectAnswers: totalIncorrect,
			AccuracyRate:          roundPercent(totalCorrect, totalCorrect+totalIncorrect),
			LearningPace:          record.LearningPace,
		},
		Strengths:       record.Strengths,
		Weaknesses:      record.Weaknesses,
		ModuleSummaries: moduleSummaries,
		Milestones:      record.Milestones,
	}, nil
}

// roundPercent returns round(part/total*100), or 0 when total is zero.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
