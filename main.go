package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/paginatto/paginatto-bot/database"
	"github.com/paginatto/paginatto-bot/internal/catalog"
	"github.com/paginatto/paginatto-bot/internal/handlers"
	"github.com/paginatto/paginatto-bot/internal/models"
	"github.com/paginatto/paginatto-bot/internal/routes"
	"github.com/paginatto/paginatto-bot/internal/services"
	"github.com/paginatto/paginatto-bot/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	// Catalog: built once, read-only afterwards.
	idx := catalog.New(catalog.Load())

	// Context store: Redis when configured, always with the in-process
	// fallback so an unreachable Redis degrades instead of failing.
	memStore := storage.NewMemoryStore()
	var store storage.ContextStore = memStore
	var redisStore *storage.RedisStore
	if url := os.Getenv("REDIS_URL"); url != "" {
		rs, err := storage.NewRedisStore(url)
		if err != nil {
			log.Printf("⚠️  Invalid REDIS_URL, using in-memory contexts: %v", err)
		} else {
			redisStore = rs
			store = storage.NewFallbackStore(rs, memStore)
			log.Println("✅ Redis context store configured")
		}
	} else {
		log.Println("⚠️  REDIS_URL not set - contexts are in-memory only")
	}

	// Outbound sender: missing credentials degrade to logged, undelivered
	// replies rather than refusing to start.
	sender := services.NewZAPIService()
	if !sender.Configured() {
		log.Println("⚠️  Z-API credentials not found - replies will not be delivered")
	}

	// Checkout event log: optional Postgres.
	var recorder *services.EventRecorder
	eventsDB := false
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_NAME") != "" {
		log.Println("📦 Connecting to PostgreSQL database...")
		if err := database.Connect(); err != nil {
			log.Printf("⚠️  Event log disabled: %v", err)
		} else if err := database.DB.AutoMigrate(&models.CheckoutEvent{}); err != nil {
			log.Printf("⚠️  Event log disabled (migration failed): %v", err)
		} else {
			recorder = services.NewEventRecorder(database.DB)
			eventsDB = true
			log.Println("✅ Checkout event log ready")
		}
	}

	responder := services.NewResponder(store, sender, idx)

	app := fiber.New(fiber.Config{
		AppName: "Paginatto Bot v2.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app,
		handlers.NewCartPandaHandler(responder, recorder),
		handlers.NewZAPIHandler(responder, sender),
		handlers.NewHealthHandler(idx, redisStore, sender.Configured(), eventsDB),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 Paginatto Bot starting on port %s", port)
	log.Printf("📚 Catalog: %d items", len(idx.Items))
	log.Printf("📱 Z-API: %s", senderStatus(sender))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func senderStatus(sender *services.ZAPIService) string {
	if sender.Configured() {
		return "Configured"
	}
	return "Not configured"
}
