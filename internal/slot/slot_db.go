package slot

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresSlot stores values in a two-column table, one row per key.
type PostgresSlot struct {
	db *sql.DB
}

func NewPostgresSlot(db *sql.DB) *PostgresSlot {
	return &PostgresSlot{db: db}
}

// OpenPostgres opens a pgx-backed *sql.DB, verifies it and makes sure the
// slot table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSlot, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres slot: open: %w", err)
	}

	s := NewPostgresSlot(db)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres slot: ping: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSlot) Migrate(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS kv_slots (
				key   TEXT PRIMARY KEY,
				value BYTEA NOT NULL
			)
		`)
		if err != nil {
			return fmt.Errorf("postgres slot: migrate: %w", err)
		}
		return nil
	})
}

func (s *PostgresSlot) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT value
			FROM kv_slots
			WHERE key = $1
		`, key).Scan(&v)
	})

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *PostgresSlot) Set(ctx context.Context, key string, value []byte) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO kv_slots (key, value)
			VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		`, key, value)
		return err
	})
}

func (s *PostgresSlot) Close() error { return s.db.Close() }
