// Command devserver runs a local backend for the Fridge client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge/config"
	"github.com/pageza/fridge/internal/database"
	"github.com/pageza/fridge/internal/devserver"
	"github.com/pageza/fridge/internal/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateServerConfig(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, nil)
	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	// Initialize database
	db, err := database.Open(cfg.DevDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts := []devserver.Option{devserver.WithLogger(log), devserver.WithRegistry(reg)}

	if cfg.GenerateLimit > 0 {
		client, err := database.NewRedisClient(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis for rate limiting: %v", err)
		}
		defer client.Close()
		opts = append(opts, devserver.WithRateLimiter(devserver.NewGenerateRateLimiter(client, cfg.GenerateLimit, cfg.GenerateWindow)))
		log.WithFields(logrus.Fields{"limit": cfg.GenerateLimit, "window": cfg.GenerateWindow}).Info("recipe generation rate limit enabled")
	}

	srv, err := devserver.New(cfg, db, opts...)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Info("server stopped")
}
