// internal/database/database.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared connection pool. Nil when no database is configured;
// callers nil-guard and skip persistence in that case.
var DB *pgxpool.Pool

// Connect opens the pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	DB = pool
	logrus.Info("connected to postgres")
	return nil
}

// Migrate creates the round archive table if it does not exist.
func Migrate(ctx context.Context) error {
	if DB == nil {
		return nil
	}
	_, err := DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS round_results (
			id          BIGSERIAL PRIMARY KEY,
			room_code   TEXT        NOT NULL,
			result      JSONB       NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS round_results_room_idx ON round_results (room_code);
	`)
	if err != nil {
		return fmt.Errorf("migrate round_results: %w", err)
	}
	return nil
}

// StoreRoundResult archives a completed round's summary as JSON. The result
// parameter is any JSON-marshalable summary; taking it loosely keeps this
// package free of game imports.
func StoreRoundResult(ctx context.Context, roomCode string, result interface{}) error {
	if DB == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal round result: %w", err)
	}
	if _, err := DB.Exec(ctx,
		`INSERT INTO round_results (room_code, result) VALUES ($1, $2)`,
		roomCode, raw,
	); err != nil {
		return fmt.Errorf("insert round result: %w", err)
	}
	return nil
}
