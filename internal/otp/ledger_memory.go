package otp

import (
	"context"
	"sync"
	"time"

	"phishguard/pkg/sentinel"
)

// MemoryLedger keeps pending codes in process memory. It intentionally favors
// clarity over performance; concurrent issue/verify for the same email may
// observe either code, which is an accepted narrow race for a single-user
// initiated flow.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]Entry)}
}

func (l *MemoryLedger) Put(_ context.Context, email string, entry Entry, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[email] = entry
	return nil
}

func (l *MemoryLedger) Get(_ context.Context, email string) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if entry, ok := l.entries[email]; ok {
		return entry, nil
	}
	return Entry{}, sentinel.ErrNotFound
}

func (l *MemoryLedger) Delete(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, email)
	return nil
}
