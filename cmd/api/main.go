package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/config"
	"github.com/noah-isme/hygiea-go-api/internal/database"
	"github.com/noah-isme/hygiea-go-api/internal/handler"
	"github.com/noah-isme/hygiea-go-api/internal/middleware"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
	"github.com/noah-isme/hygiea-go-api/internal/router"
	"github.com/noah-isme/hygiea-go-api/internal/service"
	cloud "github.com/noah-isme/hygiea-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.InspectionRecord{},
		&models.Setting{},
		&models.Inspector{},
		&models.RosterClass{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	blobStore, blobErr := cloud.New(cloud.Config{
		CloudName:      cfg.CloudinaryCloudName,
		APIKey:         cfg.CloudinaryAPIKey,
		APISecret:      cfg.CloudinaryAPISecret,
		Folder:         cfg.CloudinaryUploadFolder,
		ThumbnailWidth: cfg.ThumbnailWidth,
	}, logger)
	if blobErr != nil {
		// Submissions with photos will fail until credentials are fixed; the
		// diagnostics surface reports this state instead of crashing the boot.
		logger.Warn().Err(blobErr).Msg("blob store credentials unavailable")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	recordRepo := repository.NewRecordRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, redisClient, cfg.SettingsCacheTTL, activityService, logger)
	directoryService := service.NewDirectoryService(directoryRepo, redisClient, cfg.DirectoryCacheTTL, logger)
	draftService := service.NewDraftService(redisClient, cfg.DraftTTL, logger)
	sessionService := service.NewSessionService(cfg.TeamPasscode, cfg.AdminPasscode, cfg.JWTSecret, cfg.SessionTTL, logger)
	seedService := service.NewSeedService(directoryRepo, directoryService, cfg.SeedEnabled, cfg.SeedToken, logger)

	var blobStorage service.BlobStorage
	var blobPinger service.Pinger
	if blobStore != nil {
		blobStorage = blobStore
		blobPinger = service.PingerFunc(blobStore.Ping)
	}
	evidenceService := service.NewEvidenceService(blobStorage, cfg.UploadMaxMB, logger)
	recordService := service.NewRecordService(recordRepo, evidenceService, settingsService, directoryService, activityService, validate, logger)

	ledgerPinger := service.PingerFunc(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})
	diagnosticsService := service.NewDiagnosticsService(blobErr == nil, ledgerPinger, blobPinger, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SessionHandler:     handler.NewSessionHandler(sessionService, logger),
		DirectoryHandler:   handler.NewDirectoryHandler(directoryService, logger),
		SettingsHandler:    handler.NewSettingsHandler(settingsService, validate, logger),
		RecordHandler:      handler.NewRecordHandler(recordService, draftService, logger),
		DraftHandler:       handler.NewDraftHandler(draftService, validate, logger),
		DiagnosticsHandler: handler.NewDiagnosticsHandler(diagnosticsService, logger),
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		SeedHandler:        handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
