package store

import (
	"context"
	"sort"
	"sync"

	"phishguard/internal/scanner/models"
	"phishguard/pkg/sentinel"
)

// InMemoryRecordStore keeps classification results in process memory for
// development and tests.
type InMemoryRecordStore struct {
	mu   sync.RWMutex
	byID map[string]models.Record
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{byID: make(map[string]models.Record)}
}

func (s *InMemoryRecordStore) Create(_ context.Context, rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[rec.ID] = rec
	return nil
}

func (s *InMemoryRecordStore) List(_ context.Context) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]models.Record, 0, len(s.byID))
	for _, rec := range s.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return recs, nil
}

func (s *InMemoryRecordStore) Delete(_ context.Context, id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return models.Record{}, sentinel.ErrNotFound
	}
	delete(s.byID, id)
	return rec, nil
}
