package services

import (
	"github.com/architect/kidlearn/internal/analytics/models"
	"github.com/architect/kidlearn/internal/modules"
)

// Learning pace thresholds, in time units per correct answer. Fixed
// constants of the design.
const (
	fastPaceThreshold = 1.0
	slowPaceThreshold = 3.0
)

// calculateStrengths returns the modules where the child clearly performs
// well: at least one correct answer, and more than twice as many correct as
// incorrect. Evaluated over the whole record in canonical module order.
func calculateStrengths(record *models.AnalyticsRecord) []string {
	strengths := []string{}
	for _, name := range modules.All() {
		ma := record.ModuleAnalytics[name]
		if ma.CorrectAnswers > 0 && ma.CorrectAnswers > ma.IncorrectAnswers*2 {
			strengths = append(strengths, name)
		}
	}
	return strengths
}

// calculateWeaknesses returns the modules where incorrect answers match or
// exceed correct ones. A module with no answers at all is neither a strength
// nor a weakness.
func calculateWeaknesses(record *models.AnalyticsRecord) []string {
	weaknesses := []string{}
	for _, name := range modules.All() {
		ma := record.ModuleAnalytics[name]
		if ma.IncorrectAnswers > 0 && ma.IncorrectAnswers >= ma.CorrectAnswers {
			weaknesses = append(weaknesses, name)
		}
	}
	return weaknesses
}

// calculateLearningPace classifies the child's pace from the average time
// attributable to each correct answer. Module time is attributed to correct
// answers proportionally to the module's accuracy ratio.
func calculateLearningPace(record *models.AnalyticsRecord) string {
	totalCorrect := 0
	timeForCorrect := 0.0

	for _, name := range modules.All() {
		ma := record.ModuleAnalytics[name]
		totalCorrect += ma.CorrectAnswers
		if ma.CorrectAnswers > 0 {
			ratio := float64(ma.CorrectAnswers) / float64(ma.CorrectAnswers+ma.IncorrectAnswers)
			timeForCorrect += ma.TimeSpent * ratio
		}
	}

	if totalCorrect == 0 {
		return models.PaceAverage
	}

	avgTimePerCorrect := timeForCorrect / float64(totalCorrect)
	switch {
	case avgTimePerCorrect < fastPaceThreshold:
		return models.PaceFast
	case avgTimePerCorrect > slowPaceThreshold:
		return models.PaceSlow
	default:
		return models.PaceAverage
	}
}

// recomputeDerived refreshes the record's strengths, weaknesses and pace.
// Called after every activity write.
func recomputeDerived(record *models.AnalyticsRecord) {
	record.Strengths = calculateStrengths(record)
	record.Weaknesses = calculateWeaknesses(record)
	record.LearningPace = calculateLearningPace(record)
}

// containsString reports whether list already holds s.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
