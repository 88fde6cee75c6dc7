package store

import (
	"context"
	"sort"
	"sync"

	"phishguard/internal/contact/models"
	"phishguard/pkg/sentinel"
)

// InMemoryMessageStore keeps submissions in process memory for development
// and tests.
type InMemoryMessageStore struct {
	mu   sync.RWMutex
	byID map[string]models.Message
}

func NewInMemoryMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{byID: make(map[string]models.Message)}
}

func (s *InMemoryMessageStore) Create(_ context.Context, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[msg.ID] = msg
	return nil
}

func (s *InMemoryMessageStore) List(_ context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]models.Message, 0, len(s.byID))
	for _, msg := range s.byID {
		msgs = append(msgs, msg)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	return msgs, nil
}

func (s *InMemoryMessageStore) Delete(_ context.Context, id string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.byID[id]
	if !ok {
		return models.Message{}, sentinel.ErrNotFound
	}
	delete(s.byID, id)
	return msg, nil
}
