package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savegress/vitalscope/internal/api"
	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/insights"
	"github.com/savegress/vitalscope/internal/population"
)

func main() {
	log.Println("Starting VitalScope...")

	// Load configuration
	cfg := loadConfig()

	// Live analytics thresholds shared by every engine
	thresholds := config.NewManager(cfg.Analytics)

	// Initialize analytics services
	insightService := insights.NewService(thresholds)
	populationAnalyzer := population.NewAnalyzer(thresholds)

	// Create API server
	server := api.NewServer(cfg, insightService, populationAnalyzer, thresholds)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("VitalScope API listening on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down VitalScope...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("VitalScope stopped")
}

func loadConfig() *config.Config {
	configPath := os.Getenv("VITALSCOPE_CONFIG")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Printf("Failed to load config from %s: %v, using defaults", configPath, err)
			return config.LoadFromEnv()
		}
		return cfg
	}
	return config.LoadFromEnv()
}
