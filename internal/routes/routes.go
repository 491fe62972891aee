package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paginatto/paginatto-bot/internal/handlers"
	"github.com/paginatto/paginatto-bot/internal/middleware"
)

// SetupRoutes wires the webhook and monitoring endpoints.
func SetupRoutes(app *fiber.App, cartpanda *handlers.CartPandaHandler, zapi *handlers.ZAPIHandler, health *handlers.HealthHandler) {
	app.Get("/", health.HandleRoot)
	app.Get("/health", health.HandleHealth)

	webhooks := app.Group("/webhook")

	// Checkout platform: hard 401 on a bad secret.
	webhooks.Post("/cartpanda",
		middleware.RequireSecret("X-Cartpanda-Secret", "CARTPANDA_WEBHOOK_SECRET"),
		cartpanda.HandleWebhook)

	// Messaging gateway: lenient by default (the gateway retries hard on
	// non-2xx), strict when ZAPI_WEBHOOK_STRICT=true.
	webhooks.Post("/zapi",
		middleware.WarnSecret("X-Zapi-Secret", "ZAPI_WEBHOOK_SECRET"),
		zapi.HandleWebhook)

	// Status pings from the gateway must not 404.
	webhooks.Post("/zapi/status", zapi.HandleStatus)
}
