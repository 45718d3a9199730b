package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresKV stores blobs in a single key/value table. It exists for
// clinic deployments that already run a database and want the record set
// covered by the same backup routine.
type PostgresKV struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresKV ensures the blob table exists and returns the backend.
func NewPostgresKV(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*PostgresKV, error) {
	query := `
		CREATE TABLE IF NOT EXISTS record_blobs (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.Exec(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to create record_blobs table: %w", err)
	}
	return &PostgresKV{db: db, logger: logger}, nil
}

// Get implements KV.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM record_blobs WHERE key = $1`

	var value []byte
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		p.logger.Error("failed to read blob", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO record_blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		p.logger.Error("failed to write blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM record_blobs WHERE key = $1`

	if _, err := p.db.Exec(ctx, query, key); err != nil {
		p.logger.Error("failed to delete blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

var _ KV = (*PostgresKV)(nil)
