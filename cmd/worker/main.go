package main

import (
	"context"
	"go-contacts-backend/config"
	"go-contacts-backend/internal/notification"
	"go-contacts-backend/pkg/email"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/queue"
	"go-contacts-backend/pkg/redis"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Standalone consumer for the notification queue. Runs next to API instances
// started with QUEUE_EMBEDDED_WORKER=false.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14})

	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Error("Worker requires Redis", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured")
	}

	worker := notification.NewWorker(queue.NewRedisQueue(redis.Client(), ""), emailService, notification.WorkerConfig{
		Queue:        cfg.NotificationQueue,
		MaxAttempts:  cfg.QueueMaxAttempts,
		RetryBackoff: cfg.QueueRetryBackoff,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil {
		logger.Log.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Worker exiting")
}
