package store

import (
	"context"
	"sort"
	"sync"

	"phishguard/internal/auth/models"
	"phishguard/pkg/sentinel"
)

// InMemoryUserStore keeps credential records in process memory. It backs
// development and tests; production deployments configure Postgres.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{byEmail: make(map[string]models.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return sentinel.ErrConflict
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return models.User{}, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.byEmail))
	for _, user := range s.byEmail {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *InMemoryUserStore) Delete(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, user := range s.byEmail {
		if user.ID == id {
			delete(s.byEmail, email)
			return user, nil
		}
	}
	return models.User{}, sentinel.ErrNotFound
}
