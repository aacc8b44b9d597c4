// Package seed pre-populates the stores with demo accounts for development.
package seed

import (
	"context"

	analyticsmodels "github.com/architect/kidlearn/internal/analytics/models"
	analyticsservices "github.com/architect/kidlearn/internal/analytics/services"
	"github.com/architect/kidlearn/internal/modules"
	progressservices "github.com/architect/kidlearn/internal/progress/services"
	usermodels "github.com/architect/kidlearn/internal/users/models"
	userservices "github.com/architect/kidlearn/internal/users/services"
	"github.com/architect/kidlearn/pkg/logger"
	"go.uber.org/zap"
)

func boolPtr(b bool) *bool { return &b }

// Demo creates two demo children with some progress, activity and milestones.
// Errors are logged and skipped; demo data is best effort.
func Demo(ctx context.Context, users *userservices.Service, progress *progressservices.Service, analytics *analyticsservices.Service) {
	alex, err := users.CreateUser(ctx, &usermodels.CreateUserRequest{
		Name:        "Little Alex",
		AgeGroup:    usermodels.AgeGroupPreStudents,
		ParentEmail: "parent@example.com",
	})
	if err != nil {
		logger.Warn("demo seed skipped", zap.Error(err))
		return
	}

	emma, err := users.CreateUser(ctx, &usermodels.CreateUserRequest{
		Name:        "Emma",
		AgeGroup:    usermodels.AgeGroupElementary,
		ParentEmail: "parent2@example.com",
	})
	if err != nil {
		logger.Warn("demo seed skipped", zap.Error(err))
		return
	}

	progress.ApplyModuleProgress(ctx, alex.ID, modules.Alphabet, 30, false)
	progress.ApplyModuleProgress(ctx, alex.ID, modules.Counting, 20, false)

	progress.ApplyModuleProgress(ctx, emma.ID, modules.Alphabet, 100, true)
	progress.ApplyModuleProgress(ctx, emma.ID, modules.Counting, 80, false)
	progress.ApplyModuleProgress(ctx, emma.ID, modules.Sentences, 50, false)
	progress.ApplyModuleProgress(ctx, emma.ID, modules.Math, 40, false)

	analytics.StartSession(ctx, alex.ID)
	analytics.StartSession(ctx, emma.ID)

	analytics.RecordActivity(ctx, alex.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Alphabet, TimeSpent: 5, IsCorrect: boolPtr(true), ItemID: "a",
	})
	analytics.RecordActivity(ctx, alex.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Alphabet, TimeSpent: 3, IsCorrect: boolPtr(false), ChallengeArea: "letter-recognition",
	})
	analytics.RecordActivity(ctx, alex.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Counting, TimeSpent: 4, IsCorrect: boolPtr(true), ItemID: "counting-1-10",
	})
	analytics.AddMilestone(ctx, alex.ID, &analyticsmodels.AddMilestoneRequest{
		Title: "First Login", Description: "Logged in for the first time", Type: "achievement",
	})

	analytics.RecordActivity(ctx, emma.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Alphabet, TimeSpent: 10, IsCorrect: boolPtr(true), ItemID: "alphabet-complete",
	})
	analytics.RecordActivity(ctx, emma.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Counting, TimeSpent: 8, IsCorrect: boolPtr(true), ItemID: "counting-1-20",
	})
	analytics.RecordActivity(ctx, emma.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Math, TimeSpent: 12, IsCorrect: boolPtr(false), ChallengeArea: "subtraction",
	})
	analytics.RecordActivity(ctx, emma.ID, &analyticsmodels.RecordActivityRequest{
		Module: modules.Sentences, TimeSpent: 15, IsCorrect: boolPtr(true), ItemID: "basic-sentences",
	})
	analytics.AddMilestone(ctx, emma.ID, &analyticsmodels.AddMilestoneRequest{
		Title: "Alphabet Master", Description: "Completed the entire alphabet module", Type: "completion",
	})
	analytics.AddMilestone(ctx, emma.ID, &analyticsmodels.AddMilestoneRequest{
		Title: "Math Explorer", Description: "Started exploring math concepts", Type: "progress",
	})

	logger.Info("demo data seeded",
		zap.String("alex_id", alex.ID),
		zap.String("emma_id", emma.ID),
	)
}
