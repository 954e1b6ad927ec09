package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"subtrack/internal/amqp"
	"subtrack/internal/config"
	"subtrack/internal/core"
	applog "subtrack/internal/log"
	"subtrack/internal/services"
	"subtrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "reminder-worker",
	})
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

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
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPChangedQueue, cfg.AMQPDueQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	processor := services.NewDueProcessor(repo, amqpClient, cfg.PublishConcurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runScan := func() {
		day := core.DateOf(time.Now())
		logger.Info("Scanning for due payments", "day", day.ISO())
		count, err := processor.ProcessDay(ctx, day)
		if err != nil {
			logger.Error("Due scan failed", "error", err, "day", day.ISO())
			return
		}
		logger.Info("Due scan complete", "day", day.ISO(), "reminders_published", count)
	}

	// Run an initial scan on startup so a worker that was down on the
	// scheduled time still catches today's payments.
	runScan()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderCron, runScan); err != nil {
		logger.Error("Invalid reminder cron expression", "error", err, "cron", cfg.ReminderCron)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("Reminder schedule active", "cron", cfg.ReminderCron)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down reminder-worker...")
	cancel()

	// Let an in-flight scan finish before exiting.
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
		logger.Info("Reminder-worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
