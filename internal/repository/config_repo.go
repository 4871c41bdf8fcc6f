package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrConfigNotFound is returned when no row exists for a config name.
var ErrConfigNotFound = errors.New("config not found")

// ConfigRepo stores named JSON configuration documents.
type ConfigRepo struct {
	pool *pgxpool.Pool
}

func NewConfigRepo(pool *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

// Get decodes the document stored under name into dst.
func (r *ConfigRepo) Get(ctx context.Context, name string, dst any) (time.Time, error) {
	var data []byte
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, "SELECT data, updated_at FROM config WHERE name = $1", name).Scan(&data, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, ErrConfigNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load config %s: %w", name, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode config %s: %w", name, err)
	}
	return updatedAt, nil
}

// SetMany upserts several documents in one transaction.
func (r *ConfigRepo) SetMany(ctx context.Context, docs map[string]any) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin config transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for name, v := range docs {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode config %s: %w", name, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO config (name, data, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
			name, data,
		)
		if err != nil {
			return fmt.Errorf("failed to save config %s: %w", name, err)
		}
	}

	return tx.Commit(ctx)
}

// Exists reports whether a document is stored under name.
func (r *ConfigRepo) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM config WHERE name = $1)", name).Scan(&exists)
	return exists, err
}
