package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"subtrack/internal/amqp"
	"subtrack/internal/config"
	apphttp "subtrack/internal/http"
	applog "subtrack/internal/log"
	"subtrack/internal/seed"
	"subtrack/internal/services"
	"subtrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "subtrack",
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	// AMQP is optional: without a broker the service still works, change
	// messages are just skipped.
	var publisher services.ChangePublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPChangedQueue, cfg.AMQPDueQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, change messages disabled", "error", err)
	} else {
		publisher = amqpClient
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
	}

	svc := services.NewSubscriptionService(repo, publisher)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Close error", "error", err)
		}
	}()

	if cfg.SeedFile != "" {
		subs, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Error("Failed to load seed file", "error", err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		created, err := seed.Apply(context.Background(), svc, subs)
		if err != nil {
			logger.Error("Failed to apply seed file", "error", err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		logger.Info("Seed file applied", "path", cfg.SeedFile, "created", created)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.HorizonDays)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting subtrack server", "port", cfg.Port, "horizon_days", cfg.HorizonDays)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
