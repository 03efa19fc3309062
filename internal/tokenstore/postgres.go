package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// NewDB opens and pings a postgres connection.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// PostgresStore keeps the token slot in a shared table, keyed by profile so
// one database can hold the sessions for several API deployments.
type PostgresStore struct {
	db      *sql.DB
	profile string
}

func NewPostgres(db *sql.DB, profile string) *PostgresStore {
	if profile == "" {
		profile = "default"
	}
	return &PostgresStore{db: db, profile: profile}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS client_tokens (
			profile    TEXT NOT NULL,
			key        TEXT NOT NULL,
			token      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (profile, key)
		)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create client_tokens table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (string, error) {
	query := `SELECT token FROM client_tokens WHERE profile = $1 AND key = $2`

	var token string
	err := s.db.QueryRowContext(ctx, query, s.profile, Key).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *PostgresStore) Save(ctx context.Context, token string) error {
	query := `
		INSERT INTO client_tokens (profile, key, token)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile, key) DO UPDATE SET token = EXCLUDED.token, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, s.profile, Key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	query := `DELETE FROM client_tokens WHERE profile = $1 AND key = $2`

	if _, err := s.db.ExecContext(ctx, query, s.profile, Key); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
