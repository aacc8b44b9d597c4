package repository

import (
	"context"
	"sync"

	"github.com/architect/kidlearn/internal/analytics/models"
	"github.com/architect/kidlearn/internal/common/errors"
)

// MemoryRepository keeps analytics records in a process-resident map.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.AnalyticsRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*models.AnalyticsRecord),
	}
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (*models.AnalyticsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[userID]
	if !ok {
		return nil, errors.NotFound("user analytics")
	}
	return record.Clone(), nil
}

func (r *MemoryRepository) GetOrCreate(_ context.Context, userID string) (*models.AnalyticsRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[userID]
	if !ok {
		record = models.NewAnalyticsRecord(userID)
		r.records[userID] = record
	}
	return record.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, record *models.AnalyticsRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.UserID] = record.Clone()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, userID)
	return nil
}
