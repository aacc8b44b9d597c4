package repository

import (
	"context"

	"github.com/architect/kidlearn/internal/analytics/models"
)

// Repository stores one AnalyticsRecord per user. GetOrCreate vivifies a
// fresh record on first touch.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.AnalyticsRecord, error)
	GetOrCreate(ctx context.Context, userID string) (*models.AnalyticsRecord, error)
	Save(ctx context.Context, record *models.AnalyticsRecord) error
	Delete(ctx context.Context, userID string) error
}
