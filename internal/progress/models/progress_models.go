package models

import (
	"time"

	"github.com/architect/kidlearn/internal/modules"
)

// ModuleProgress is a single module's completion state for one user.
type ModuleProgress struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// ModuleMap maps module name to its progress state.
type ModuleMap map[string]ModuleProgress

// ProgressRecord holds a user's star total and per-module progress.
type ProgressRecord struct {
	UserID    string    `gorm:"primaryKey" json:"userId"`
	Stars     int       `json:"stars"`
	Modules   ModuleMap `gorm:"serializer:json" json:"modules"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProgressRecord returns a fresh record with all five modules zeroed.
func NewProgressRecord(userID string) *ProgressRecord {
	mods := make(ModuleMap, 5)
	for _, name := range modules.All() {
		mods[name] = ModuleProgress{}
	}
	return &ProgressRecord{
		UserID:  userID,
		Modules: mods,
	}
}

// Clone returns a deep copy of the record.
func (r *ProgressRecord) Clone() *ProgressRecord {
	out := *r
	out.Modules = make(ModuleMap, len(r.Modules))
	for name, mp := range r.Modules {
		out.Modules[name] = mp
	}
	return &out
}

// UpdateProgressRequest is the payload for applying a module progress update.
type UpdateProgressRequest struct {
	Module        string `json:"module" binding:"required"`
	ProgressValue *int   `json:"progressValue" binding:"required"`
	IsCompleted   bool   `json:"isCompleted"`
}

// LeaderboardEntry is one row of the star leaderboard.
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	AgeGroup string `json:"ageGroup"`
	Stars    int    `json:"stars"`
}
