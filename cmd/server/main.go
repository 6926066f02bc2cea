package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/api"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/app"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.UseJSON(os.Stdout)
	}

	// Initialize collaborators
	application, err := app.New(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	syncCtx, cancelSync := context.WithTimeout(context.Background(), 2*time.Minute)
	paths, err := application.SyncDatasets(syncCtx)
	cancelSync()
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.Data.Source).Msg("Failed to sync datasets")
	}
	if len(paths) > 0 {
		logger.Log.Info().Int("tables", len(paths)).Str("source", cfg.Data.Source).Msg("Datasets synced")
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Dashboard:   application.Dashboard,
		Copilot:     application.Copilot,
		Exporter:    application.Exporter,
		ChatLimiter: application.ChatLimiter,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("data_dir", application.Loader.Dir()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := application.Close(); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to release resources")
	}

	logger.Log.Info().Msg("Server exiting")
}
