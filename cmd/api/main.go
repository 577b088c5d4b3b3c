package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"video-profile-extractor/config"
	_ "video-profile-extractor/docs" // Important for Swagger
	v1 "video-profile-extractor/internal/delivery/http/v1"
	"video-profile-extractor/internal/media"
	"video-profile-extractor/internal/provider"
	"video-profile-extractor/internal/repository/mongodb"
	"video-profile-extractor/internal/usecase"
	"video-profile-extractor/pkg/database"
	"video-profile-extractor/pkg/logger"
)

// @title           Video Profile Extractor API
// @version         1.0
// @description     Backend that turns uploaded presentation videos into structured professional profiles and CV text.
// @host            localhost:9000
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting video profile extractor", "port", cfg.Port)

	// 3. Setup Prompt Store
	// An unreachable store is a degraded mode, never a startup failure: the
	// repository serves built-in default templates instead.
	db, err := database.NewMongoConnection(cfg.MongoURI(), cfg.MongoDatabase)
	if err != nil {
		logger.Log.Warn("Failed to connect to MongoDB, using default prompts",
			"uri", cfg.RedactedMongoURI(), "error", err)
	}
	promptRepo := mongodb.NewPromptRepository(db)

	// 4. Setup AI Provider (fallback chain, selected once for the process)
	aiProvider, err := provider.NewFromConfig(context.Background(), cfg, promptRepo)
	if err != nil {
		logger.Log.Error("No usable AI provider, refusing to start", "error", err)
		os.Exit(1)
	}

	// 5. Setup Media Extractor
	extractor := media.NewExtractor(cfg.AudioSampleRate, cfg.AudioChannels)

	// 6. Setup UseCases
	validate := validator.New()
	videoUC := usecase.NewVideoUsecase(extractor, aiProvider, validate)
	promptUC := usecase.NewPromptUsecase(promptRepo, validate)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		VideoUC:  videoUC,
		PromptUC: promptUC,
		Config:   cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
