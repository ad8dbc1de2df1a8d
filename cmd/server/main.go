package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/api"
	"github.com/jafarshop/variantapi/internal/config"
	"github.com/jafarshop/variantapi/internal/service"
	"github.com/jafarshop/variantapi/internal/shopify"
	"github.com/jafarshop/variantapi/pkg/metrics"
)

func main() {
	// Load configuration; missing shop domain or access token aborts here,
	// before anything reaches the network
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting custom variant API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("resolution_mode", string(cfg.Provision.Mode)),
	)

	// Initialize Shopify client and provisioning service
	client := shopify.NewClient(cfg.Shopify, logger)
	provisionMetrics := metrics.NewProvisionMetrics(nil)
	svc := service.NewVariantService(client, cfg.Provision, provisionMetrics, logger)

	// Initialize router
	router := api.NewRouter(cfg, svc, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
