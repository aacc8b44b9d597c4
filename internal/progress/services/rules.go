package services

import (
	"github.com/architect/kidlearn/internal/progress/models"
)

const (
	// One star for every full 10% of progress gained.
	starsPerTenPercent = 10

	// Flat bonus for completing a module for the first time.
	completionBonus = 5
)

// starsForUpdate computes the stars earned by moving a module from its
// previous state to progressValue. Decreases are allowed but never rewarded,
// and stars are never taken away.
func starsForUpdate(previous models.ModuleProgress, progressValue int, isCompleted bool) int {
	stars := 0
	if progressValue > previous.Progress {
		stars = (progressValue - previous.Progress) / starsPerTenPercent
	}
	if isCompleted && !previous.Completed {
		stars += completionBonus
	}
	return stars
}
