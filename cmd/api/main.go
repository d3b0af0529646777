package main

import (
	"context"
	"go-contacts-backend/config"
	_ "go-contacts-backend/docs" // Important for Swagger
	v1 "go-contacts-backend/internal/delivery/http/v1"
	"go-contacts-backend/internal/notification"
	"go-contacts-backend/internal/postalcode"
	"go-contacts-backend/internal/repository/postgres"
	"go-contacts-backend/internal/usecase"
	"go-contacts-backend/pkg/cache"
	"go-contacts-backend/pkg/database"
	"go-contacts-backend/pkg/email"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/queue"
	"go-contacts-backend/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heptiolabs/healthcheck"
	"golang.org/x/sync/errgroup"
)

// @title           Contacts Backend API
// @version         1.0
// @description     Cadastro de contatos com validação de CEP e exportação.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14})
	logger.Log.Info("Starting contacts backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	db := database.NewSQLX(dbPool)
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.ApplySchema(schemaCtx, db.DB)
	cancelSchema()
	if err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (cache, queue and rate limiting fall back to memory)
	var (
		store cache.Store
		jobs  queue.Queue
	)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory cache and queue", "error", err)
		memStore := cache.NewMemoryStore(time.Minute)
		defer memStore.Close()
		store = memStore
		jobs = queue.NewMemoryQueue()
	} else {
		defer redis.Close()
		store = cache.NewRedisStore(redis.Client(), "")
		jobs = queue.NewRedisQueue(redis.Client(), "")
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will fail and be retried")
	}

	// 6. Setup UseCases
	postalCodes := postalcode.NewValidator(store, postalcode.Config{
		BaseURL: cfg.PostalCodeAPIURL,
		TTL:     cfg.PostalCodeCacheTTL,
		Timeout: cfg.PostalCodeTimeout,
	})
	contactRepo := postgres.NewContactRepository(db)
	dispatcher := notification.NewDispatcher(jobs, cfg.NotificationQueue, cfg.NotificationMail)
	contactUC := usecase.NewContactUsecase(contactRepo, postalCodes, dispatcher)
	exportUC := usecase.NewExportUsecase(contactRepo)

	checks := map[string]healthcheck.Check{
		"database": healthcheck.DatabasePingCheck(db.DB, 2*time.Second),
	}
	if redis.Client() != nil {
		checks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redis.HealthCheck(ctx)
		}
	}

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:    contactUC,
		ExportUC:     exportUC,
		PostalCodes:  postalCodes,
		HealthChecks: checks,
		Redis:        redis.Client(),
		Config:       cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
		return nil
	})

	// The in-memory queue is only visible to this process, so it always needs
	// the embedded worker.
	if cfg.QueueEmbeddedWorker || redis.Client() == nil {
		worker := notification.NewWorker(jobs, emailService, notification.WorkerConfig{
			Queue:        cfg.NotificationQueue,
			MaxAttempts:  cfg.QueueMaxAttempts,
			RetryBackoff: cfg.QueueRetryBackoff,
		})
		group.Go(func() error {
			return worker.Run(groupCtx)
		})
	}

	// Graceful Shutdown
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server forced to shutdown", "error", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Log.Error("Server stopped with error", "error", err)
	}

	logger.Log.Info("Server exiting")
}
