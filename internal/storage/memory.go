package storage

import (
	"context"
	"sync"
	"time"

	"github.com/paginatto/paginatto-bot/internal/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps contexts in a process-local map with the same TTL
// semantics as the Redis store. It backs tests and the degraded mode
// when Redis is unreachable.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an in-memory context store and starts its
// expiry janitor.
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	go m.janitor()
	return m
}

func (m *MemoryStore) Store(_ context.Context, phone string, conv *models.ConversationContext, ttl time.Duration) error {
	data, err := conv.Marshal()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[contextKey(phone)] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Read(_ context.Context, phone string) (*models.ConversationContext, error) {
	key := contextKey(phone)

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, nil
	}
	return models.UnmarshalContext(entry.data)
}

func (m *MemoryStore) Clear(_ context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, contextKey(phone))
	return nil
}

// janitor sweeps expired entries every 5 minutes so an idle process does
// not accumulate dead contexts.
func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := m.now()
		m.mu.Lock()
		for key, entry := range m.entries {
			if now.After(entry.expiresAt) {
				delete(m.entries, key)
			}
		}
		m.mu.Unlock()
	}
}
