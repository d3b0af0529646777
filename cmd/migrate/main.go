package main

import (
	"context"
	"go-contacts-backend/config"
	"go-contacts-backend/pkg/database"
	"go-contacts-backend/pkg/logger"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Applies the schema and exits. Uses lib/pq directly so it also works against
// a database the API pool cannot reach through PgBouncer.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel})

	db, err := sqlx.Connect("postgres", cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.ApplySchema(ctx, db.DB); err != nil {
		logger.Log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Schema applied")
}
