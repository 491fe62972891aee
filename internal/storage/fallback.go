package storage

import (
	"context"
	"log"
	"time"

	"github.com/paginatto/paginatto-bot/internal/models"
)

// FallbackStore wraps a primary store and degrades to a secondary
// (normally the in-process MemoryStore) whenever the primary fails.
// Callers never see a backend failure: the worst case for a store or
// clear is that only the local copy changes, and a failed read consults
// the local copy. Each degradation is logged as a warning.
type FallbackStore struct {
	primary   ContextStore
	secondary ContextStore
}

// NewFallbackStore builds the store used by the routing layer.
func NewFallbackStore(primary, secondary ContextStore) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary}
}

func (f *FallbackStore) Store(ctx context.Context, phone string, conv *models.ConversationContext, ttl time.Duration) error {
	if err := f.primary.Store(ctx, phone, conv, ttl); err != nil {
		log.Printf("⚠️  Context store unavailable (store), using memory: %v", err)
		return f.secondary.Store(ctx, phone, conv, ttl)
	}
	return nil
}

func (f *FallbackStore) Read(ctx context.Context, phone string) (*models.ConversationContext, error) {
	conv, err := f.primary.Read(ctx, phone)
	if err != nil {
		log.Printf("⚠️  Context store unavailable (read), using memory: %v", err)
		return f.secondary.Read(ctx, phone)
	}
	return conv, nil
}

func (f *FallbackStore) Clear(ctx context.Context, phone string) error {
	if err := f.primary.Clear(ctx, phone); err != nil {
		log.Printf("⚠️  Context store unavailable (clear), using memory: %v", err)
		return f.secondary.Clear(ctx, phone)
	}
	return nil
}
