package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds connection settings for a PostgresStore.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MinConns int
	MaxConns int
}

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg PostgresConfig) string {
	// URL-encode password to handle special characters
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		sslMode,
	)
}

// PostgresStore persists blobs to a PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

// NewPostgresStore connects a pool, pings it, and runs migrations.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool, ctx: ctx}
	if err := s.migrate(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] postgres store connected: %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.pool.Exec(s.ctx, `CREATE TABLE IF NOT EXISTS blobs (
		key     TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create blobs table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(key string, payload []byte) error {
	_, err := s.pool.Exec(s.ctx, `INSERT INTO blobs (key, payload) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`,
		key, payload)
	return err
}

func (s *PostgresStore) Get(key string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(s.ctx, `SELECT payload FROM blobs WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return payload, nil
}

func (s *PostgresStore) Close() error {
	log.Println("[INFO] closing postgres store")
	s.pool.Close()
	return nil
}
