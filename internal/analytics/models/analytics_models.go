package models

import (
	"time"

	"github.com/architect/kidlearn/internal/modules"
)

// Learning pace classifications
const (
	PaceSlow    = "slow"
	PaceAverage = "average"
	PaceFast    = "fast"
)

// ModuleAnalytics accumulates activity data for one module.
type ModuleAnalytics struct {
	TimeSpent        float64    `json:"timeSpent"`
	CorrectAnswers   int        `json:"correctAnswers"`
	IncorrectAnswers int        `json:"incorrectAnswers"`
	CompletedItems   []string   `json:"completedItems"`
	ChallengeAreas   []string   `json:"challengeAreas"`
	LastActivity     *time.Time `json:"lastActivity"`
}

// Milestone is a discrete, timestamped achievement. The milestone list is
// append-only.
type Milestone struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}

// ModuleAnalyticsMap maps module name to its analytics.
type ModuleAnalyticsMap map[string]ModuleAnalytics

// AnalyticsRecord holds a user's session counters, per-module activity and
// the derived strengths/weaknesses/pace fields.
type AnalyticsRecord struct {
	UserID          string             `gorm:"primaryKey" json:"userId"`
	SessionsCount   int                `json:"sessionsCount"`
	TotalTimeSpent  float64            `json:"totalTimeSpent"`
	LastSession     *time.Time         `json:"lastSession"`
	ModuleAnalytics ModuleAnalyticsMap `gorm:"serializer:json" json:"moduleAnalytics"`
	Strengths       []string           `gorm:"serializer:json" json:"strengths"`
	Weaknesses      []string           `gorm:"serializer:json" json:"weaknesses"`
	LearningPace    string             `json:"learningPace"`
	Milestones      []Milestone        `gorm:"serializer:json" json:"milestones"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewAnalyticsRecord returns a fresh record with all counters zeroed and the
// pace defaulted to average.
func NewAnalyticsRecord(userID string) *AnalyticsRecord {
	moduleMap := make(ModuleAnalyticsMap, 5)
	for _, name := range modules.All() {
		moduleMap[name] = ModuleAnalytics{
			CompletedItems: []string{},
			ChallengeAreas: []string{},
		}
	}
	return &AnalyticsRecord{
		UserID:          userID,
		ModuleAnalytics: moduleMap,
		Strengths:       []string{},
		Weaknesses:      []string{},
		LearningPace:    PaceAverage,
		Milestones:      []Milestone{},
	}
}

// Clone returns a deep copy of the record.
func (r *AnalyticsRecord) Clone() *AnalyticsRecord {
	out := *r
	out.ModuleAnalytics = make(ModuleAnalyticsMap, len(r.ModuleAnalytics))
	for name, ma := range r.ModuleAnalytics {
		ma.CompletedItems = append([]string{}, ma.CompletedItems...)
		ma.ChallengeAreas = append([]string{}, ma.ChallengeAreas...)
		out.ModuleAnalytics[name] = ma
	}
	out.Strengths = append([]string{}, r.Strengths...)
	out.Weaknesses = append([]string{}, r.Weaknesses...)
	out.Milestones = append([]Milestone{}, r.Milestones...)
	return &out
}

// RecordActivityRequest is the payload for recording one activity outcome.
// IsCorrect is a three-state field: true, false, or omitted, which means the
// activity only accrues time.
type RecordActivityRequest struct {
	Module        string  `json:"module" binding:"required"`
	TimeSpent     float64 `json:"timeSpent"`
	IsCorrect     *bool   `json:"isCorrect"`
	ItemID        string  `json:"itemId"`
	ChallengeArea string  `json:"challengeArea"`
}

// AddMilestoneRequest is the payload for appending a milestone.
type AddMilestoneRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
}

// SessionResponse is returned after starting a session.
type SessionResponse struct {
	SessionsCount int        `json:"sessionsCount"`
	LastSession   *time.Time `json:"lastSession"`
}

// Recommendation suggests a module to practice next.
type Recommendation struct {
	Module   string `json:"module"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// RecommendationsResponse pairs the recommendations with the derived fields
// they were computed from.
type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	BasedOn         BasedOn          `json:"basedOn"`
}

type BasedOn struct {
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	LearningPace string   `json:"learningPace"`
}

// ModuleSummary is one module's row in the parental summary, limited to
// modules with at least one recorded answer.
type ModuleSummary struct {
	Name             string     `json:"name"`
	TimeSpent        float64    `json:"timeSpent"`
	CorrectAnswers   int        `json:"correctAnswers"`
	IncorrectAnswers int        `json:"incorrectAnswers"`
	Accuracy         int        `json:"accuracy"`
	ChallengeAreas   []string   `json:"challengeAreas"`
	LastActivity     *time.Time `json:"lastActivity"`
}

// OverallSummary aggregates totals across all modules.
type OverallSummary struct {
	TotalSessions         int        `json:"totalSessions"`
	TotalTimeSpent        float64    `json:"totalTimeSpent"`
	LastSession           *time.Time `json:"lastSession"`
	TotalCorrectAnswers   int        `json:"totalCorrectAnswers"`
	TotalIncorrectAnswers int        `json:"totalIncorrectAnswers"`
	AccuracyRate          int        `json:"accuracyRate"`
	LearningPace          string     `json:"learningPace"`
}

// ParentalSummary is the parent-facing report for one child.
type ParentalSummary struct {
	ChildName       string          `json:"childName"`
	AgeGroup        string          `json:"ageGroup"`
	OverallSummary  OverallSummary  `json:"overallSummary"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	ModuleSummaries []ModuleSummary `json:"moduleSummaries"`
	Milestones      []Milestone     `json:"milestones"`
}

// UserAnalyticsResponse wraps a record with directory context.
type UserAnalyticsResponse struct {
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	AgeGroup  string           `json:"ageGroup"`
	Analytics *AnalyticsRecord `json:"analytics"`
}
