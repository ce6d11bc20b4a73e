// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"calculators/internal/common/config"

	_ "github.com/lib/pq"
)

// ProfilesSchema creates the broker profile table used by the postgres profile store.
const ProfilesSchema = `CREATE TABLE IF NOT EXISTS broker_profiles (
	user_id        TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	first_name     TEXT NOT NULL,
	surname        TEXT NOT NULL,
	phone          TEXT NOT NULL,
	date_of_birth  DATE NOT NULL,
	license_type   TEXT NOT NULL,
	license_period INTEGER NOT NULL,
	occupation     TEXT NOT NULL,
	street_address TEXT,
	city           TEXT,
	county         TEXT,
	post_code      TEXT,
	driver_history TEXT,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pooled PostgreSQL handle. No connection is made until first use.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// NewPostgresFromDB wraps an existing handle, e.g. a sqlmock connection.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

// EnsureSchema creates the tables the stores rely on.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, ProfilesSchema); err != nil {
		return fmt.Errorf("failed to create broker_profiles: %w", err)
	}
	return nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query executes a query that returns rows
func (c *PostgresClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row
func (c *PostgresClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows
func (c *PostgresClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}
