package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paginatto/paginatto-bot/internal/catalog"
	"github.com/paginatto/paginatto-bot/internal/storage"
)

// HealthHandler reports service status for monitoring.
type HealthHandler struct {
	catalog   *catalog.Index
	redis     *storage.RedisStore // nil when running on memory only
	zapiReady bool
	eventsDB  bool
}

// NewHealthHandler creates the health endpoint handler.
func NewHealthHandler(idx *catalog.Index, redis *storage.RedisStore, zapiReady, eventsDB bool) *HealthHandler {
	return &HealthHandler{catalog: idx, redis: redis, zapiReady: zapiReady, eventsDB: eventsDB}
}

// HandleHealth returns the health payload.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	redisOK := false
	if h.redis != nil {
		redisOK = h.redis.Ping(c.Context()) == nil
	}

	return c.JSON(fiber.Map{
		"ok":            true,
		"ts":            time.Now().UTC().Format(time.RFC3339),
		"zapi_set":      h.zapiReady,
		"redis":         redisOK,
		"events_db":     h.eventsDB,
		"catalog_items": len(h.catalog.Items),
		"families":      h.catalog.Families(),
	})
}

// HandleRoot describes the service.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "paginatto-bot",
		"docs":    []string{"/health", "/webhook/cartpanda", "/webhook/zapi"},
	})
}
