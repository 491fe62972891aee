package storage

import (
	"context"
	"time"

	"github.com/paginatto/paginatto-bot/internal/models"
)

// Key prefix for conversation contexts.
const ctxKeyPrefix = "ctx:"

// Default TTLs: contexts live 180 minutes when created and are refreshed
// to 90 minutes on every mutation.
const (
	CreateTTL  = 180 * time.Minute
	RefreshTTL = 90 * time.Minute
)

// ContextStore persists conversation contexts keyed by normalized phone
// number. Implementations return an error instead of hiding backend
// failures; the fallback policy lives in FallbackStore, not here.
type ContextStore interface {
	Store(ctx context.Context, phone string, conv *models.ConversationContext, ttl time.Duration) error
	Read(ctx context.Context, phone string) (*models.ConversationContext, error)
	Clear(ctx context.Context, phone string) error
}

func contextKey(phone string) string {
	return ctxKeyPrefix + phone
}
