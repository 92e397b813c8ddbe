package overlay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const overlaySchema = `
CREATE TABLE IF NOT EXISTS overlay_kv (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore backs the durable tier with a single key/value table.
type PostgresStore struct {
	db *sqlx.DB
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c PostgresConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("overlay: connect postgres: %w", err)
	}
	if _, err := db.Exec(overlaySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("overlay: ensure schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM overlay_kv WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("overlay: postgres get %s: %w", key, err)
	}
	return raw, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overlay_kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("overlay: postgres put %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM overlay_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("overlay: postgres delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.SelectContext(ctx, &keys,
		`SELECT key FROM overlay_kv WHERE key LIKE $1 || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("overlay: postgres keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
