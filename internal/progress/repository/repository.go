package repository

import (
	"context"

	"github.com/architect/kidlearn/internal/progress/models"
)

// Repository stores one ProgressRecord per user. GetOrCreate vivifies a
// zeroed record on first touch so rule code never sees a missing record.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.ProgressRecord, error)
	GetOrCreate(ctx context.Context, userID string) (*models.ProgressRecord, error)
	Save(ctx context.Context, record *models.ProgressRecord) error
	Delete(ctx context.Context, userID string) error

	// TopByStars returns up to limit records ordered by stars descending,
	// ties broken by user ID ascending.
	TopByStars(ctx context.Context, limit int) ([]*models.ProgressRecord, error)
}
