package repository

import (
	"context"

	"github.com/architect/kidlearn/internal/users/models"
)

// Repository stores user records keyed by id. Implementations: in-memory map
// (default) and gorm-backed (sqlite/postgres).
type Repository interface {
	Find(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
