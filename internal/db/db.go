package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// MemoryDSN keeps the database in process memory only.
const MemoryDSN = ":memory:"

// Connect opens the SQLite database at dsn. An in-memory database lives on a
// single connection, so the pool is capped at one to keep every query on it.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	pool, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if dsn == MemoryDSN {
		pool.SetMaxOpenConns(1)
	}
	slog.DebugContext(ctx, "Connected to database", "dsn", dsn)
	return pool, nil
}

// InitializeDB creates the schema if it does not exist yet.
func InitializeDB(ctx context.Context, db *sqlx.DB) error {
	resultSchema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id TEXT NOT NULL,
		game_id TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		winner TEXT NOT NULL DEFAULT '',
		moves INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);`

	if _, err := db.ExecContext(ctx, resultSchema); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}

	indexSchema := `CREATE INDEX IF NOT EXISTS idx_results_room ON results (room_id);`
	if _, err := db.ExecContext(ctx, indexSchema); err != nil {
		return fmt.Errorf("failed to create results index: %w", err)
	}

	slog.DebugContext(ctx, "DB schema verified.")
	return nil
}
