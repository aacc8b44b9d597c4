package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/progress/models"
)

// MemoryRepository keeps progress records in a process-resident map.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.ProgressRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*models.ProgressRecord),
	}
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (*models.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[userID]
	if !ok {
		return nil, errors.NotFound("user progress")
	}
	return record.Clone(), nil
}

func (r *MemoryRepository) GetOrCreate(_ context.Context, userID string) (*models.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[userID]
	if !ok {
		record = models.NewProgressRecord(userID)
		r.records[userID] = record
	}
	return record.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, record *models.ProgressRecord) error {
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

func (r *MemoryRepository) TopByStars(_ context.Context, limit int) ([]*models.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*models.ProgressRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.Clone())
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Stars != records[j].Stars {
			return records[i].Stars > records[j].Stars
		}
		return records[i].UserID < records[j].UserID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
