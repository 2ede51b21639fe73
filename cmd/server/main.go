package main

import (
	"log"

	"test-checker-backend/internal/cache"
	"test-checker-backend/internal/certificate"
	"test-checker-backend/internal/cleanup"
	"test-checker-backend/internal/config"
	"test-checker-backend/internal/database"
	"test-checker-backend/internal/handlers"
	"test-checker-backend/internal/models"
	"test-checker-backend/internal/services"
	"test-checker-backend/internal/telegram"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	testCache := cache.NewTTL[*models.Test](cfg.CacheTTL)

	testService := services.NewTestService(db, testCache)
	resultService := services.NewResultService(db)
	userService := services.NewUserService(db)

	pool := certificate.DefaultPool(cfg.AssetsDir)
	batch := certificate.NewBatch(pool, certificate.NewImageRenderer(), cfg.RenderWorkers, cfg.BatchTimeout, cfg.TempDir)
	finalizeService := services.NewFinalizeService(testService, resultService, userService, batch, cfg.TempDir)

	client := telegram.NewClient(cfg.BotToken)
	stateManager := telegram.NewStateManager()
	sender := telegram.NewSender(client)
	handler := telegram.NewUpdateHandler(
		client, stateManager,
		userService, testService, resultService, finalizeService,
		pool, sender, cfg.AdminContact,
	)

	reaper := cleanup.NewReaper(cfg.TempDir, cfg.ArtifactAge)
	if err := reaper.Start(); err != nil {
		log.Fatalf("failed to start reaper: %v", err)
	}
	defer reaper.Stop()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Telegram-Bot-Api-Secret-Token"},
	}))

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	if cfg.WebhookBaseURL != "" {
		webhook := telegram.NewWebhook(client, handler, cfg.BotToken, cfg.WebhookSecret)
		if err := webhook.Register(cfg.WebhookBaseURL); err != nil {
			log.Fatalf("failed to register webhook: %v", err)
		}
		defer webhook.Unregister()
		r.POST("/webhook/bot/:secret", webhook.HandleWebhook)
	} else {
		log.Println("WEBHOOK_BASE_URL not set, falling back to long polling")
		poller := telegram.NewPoller(client, handler)
		poller.Start()
		defer poller.Stop()
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
