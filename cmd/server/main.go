package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kidlearn/internal/audio"
	"kidlearn/internal/config"
	"kidlearn/internal/database"
	"kidlearn/internal/handlers"
	"kidlearn/internal/logger"
	"kidlearn/internal/security"
	"kidlearn/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	log.Info("database connection established", "type", cfg.DatabaseType)

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	log.Info("migrations completed")

	// Seed bad words filter
	if err := db.SeedBadWords(ctx, cfg.BadWordsURL, log); err != nil {
		log.Warn("failed to seed bad words filter", "error", err)
	}

	// Initialize services
	sizes := service.LevelSizes{Reading: cfg.ReadingLevelItems, Math: cfg.MathLevelItems}
	tokens, err := security.NewTokenIssuer(cfg.SessionSecret, cfg.SessionDuration)
	if err != nil {
		log.Fatal("failed to create token issuer", "error", err)
	}

	userService := service.NewUserService(db, db, log)
	contentService := service.NewContentService(db, db, log)
	svc := handlers.Services{
		DB:           db,
		Users:        userService,
		Auth:         service.NewAuthService(userService, tokens, cfg.AdminPasswordHash, log),
		Progress:     service.NewProgressService(db, cfg.DefaultTotalItems, log),
		Content:      contentService,
		Achievements: service.NewAchievementService(db, log),
		Dashboard: service.NewDashboardService(db,
			service.NewAggregator(cfg.MinutesPerItem, cfg.DailyCapMinutes, cfg.Location()),
			sizes, cfg.DashboardLevels),
	}

	if cfg.AudioCachePath != "" {
		svc.Speaker = audio.NewSpeaker(cfg.AudioCachePath, cfg.TTSURL, log)
		contentService.UseSpeechCache(svc.Speaker)
		log.Info("spoken audio enabled", "cache", cfg.AudioCachePath)
	}

	// Seed the starter reading and math catalog
	if err := contentService.SeedCatalog(ctx); err != nil {
		log.Warn("failed to seed content catalog", "error", err)
	}

	if !cfg.AdminEnabled() {
		log.Warn("ADMIN_PASSWORD_HASH is not set, content write routes are open")
	}

	adminLimiter := security.NewRateLimiter(5, time.Minute)
	defer adminLimiter.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(svc, adminLimiter, cfg.StaticFilesPath, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
