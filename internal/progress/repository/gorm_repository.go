package repository

import (
	"context"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/progress/models"
	"gorm.io/gorm"
)

// GormRepository persists progress records in sqlite or postgres. The module
// map is stored as a JSON column.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&models.ProgressRecord{}); err != nil {
		return nil, err
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Get(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	result := r.db.WithContext(ctx).First(&record, "user_id = ?", userID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("user progress")
		}
		return nil, errors.Internal("failed to fetch progress", result.Error.Error())
	}
	return &record, nil
}

func (r *GormRepository) GetOrCreate(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	record, err := r.Get(ctx, userID)
	if err == nil {
		return record, nil
	}
	if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
		return nil, err
	}

	record = models.NewProgressRecord(userID)
	if err := r.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *GormRepository) Save(ctx context.Context, record *models.ProgressRecord) error {
	result := r.db.WithContext(ctx).Save(record)
	if result.Error != nil {
		return errors.Internal("failed to save progress", result.Error.Error())
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&models.ProgressRecord{}, "user_id = ?", userID)
	if result.Error != nil {
		return errors.Internal("failed to delete progress", result.Error.Error())
	}
	return nil
}

func (r *GormRepository) TopByStars(ctx context.Context, limit int) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	result := r.db.WithContext(ctx).
		Order("stars DESC, user_id ASC").
		Limit(limit).
		Find(&records)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch leaderboard", result.Error.Error())
	}
	return records, nil
}
