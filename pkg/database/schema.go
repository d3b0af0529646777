package database

import (
	"context"
	"database/sql"
	_ "embed"
)

//go:embed schema.sql
var Schema string

// ApplySchema creates the tables and indexes if they do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
