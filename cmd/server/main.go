package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/api"
	"github.com/VoidMesh/galaxy/internal/config"
	"github.com/VoidMesh/galaxy/internal/db"
	"github.com/VoidMesh/galaxy/internal/display"
	"github.com/VoidMesh/galaxy/internal/logging"
	"github.com/VoidMesh/galaxy/internal/params"
	"github.com/VoidMesh/galaxy/internal/random"
	"github.com/VoidMesh/galaxy/internal/scene"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	logger := logging.InitLogger(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Pretty: cfg.Logging.Format == "pretty" || !cfg.Logging.Structured,
	})
	log.SetDefault(logger)
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Initialize database
	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	surface, err := params.NewSurface(params.Defaults(), logger)
	if err != nil {
		log.Fatal("Invalid default parameters", "error", err)
	}

	galaxySrc := random.NewSource(cfg.Generation.GalaxySeed)
	starsSrc := random.NewSource(cfg.Generation.StarsSeed)
	log.Info("Random sources seeded", "galaxy_seed", galaxySrc.Seed(), "stars_seed", starsSrc.Seed())

	registry := display.NewRegistry(logger)
	sc := scene.New(surface, registry, galaxySrc, starsSrc, logger)

	start := time.Now()
	if err := sc.Start(); err != nil {
		log.Fatal("Failed to build initial point clouds", "error", err)
	}
	log.Info("Initial point clouds ready", "duration", time.Since(start), "live", registry.Live())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := api.NewRateLimiter(cfg.RateLimit)
	go limiter.Run(ctx, time.Minute)

	// Initialize API handlers
	handler := api.NewHandler(surface, sc, registry, db.NewPresetStore(database))
	router := api.SetupRoutes(handler, limiter, cfg.Server.RequestTimeout)
	log.Debug("API routes configured")

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting galaxy server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	// Release both display handles once no request can still read them
	sc.Close()
	attached, disposed := registry.Counters()
	log.Info("Server exited", "attached", attached, "disposed", disposed)
}
