package repository

import (
	"context"

	"github.com/architect/kidlearn/internal/analytics/models"
	"github.com/architect/kidlearn/internal/common/errors"
	"gorm.io/gorm"
)

// GormRepository persists analytics records in sqlite or postgres. Nested
// structures are stored as JSON columns.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&models.AnalyticsRecord{}); err != nil {
		return nil, err
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Get(ctx context.Context, userID string) (*models.AnalyticsRecord, error) {
	var record models.AnalyticsRecord
	result := r.db.WithContext(ctx).First(&record, "user_id = ?", userID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("user analytics")
		}
		return nil, errors.Internal("failed to fetch analytics", result.Error.Error())
	}
	return &record, nil
}

func (r *GormRepository) GetOrCreate(ctx context.Context, userID string) (*models.AnalyticsRecord, error) {
	record, err := r.Get(ctx, userID)
	if err == nil {
		return record, nil
	}
	if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
		return nil, err
	}

	record = models.NewAnalyticsRecord(userID)
	if err := r.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *GormRepository) Save(ctx context.Context, record *models.AnalyticsRecord) error {
	result := r.db.WithContext(ctx).Save(record)
	if result.Error != nil {
		return errors.Internal("failed to save analytics", result.Error.Error())
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&models.AnalyticsRecord{}, "user_id = ?", userID)
	if result.Error != nil {
		return errors.Internal("failed to delete analytics", result.Error.Error())
	}
	return nil
}
