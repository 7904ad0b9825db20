package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/telemetry"
)

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var openDB = sql.Open

// DefaultServerOptions returns defaults for the long-running API server.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions returns defaults for short-lived CLI migrations.
func DefaultMigrateOptions() Options {
	return Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

// OptionsFromConfig overrides defaults with the positive DB_* pool settings.
func OptionsFromConfig(defaults Options, pool config.DBPool) Options {
	opts := defaults
	if pool.MaxOpenConns > 0 {
		opts.MaxOpenConns = pool.MaxOpenConns
	}
	if pool.MaxIdleConns > 0 {
		opts.MaxIdleConns = pool.MaxIdleConns
	}
	if pool.ConnMaxLifetime > 0 {
		opts.ConnMaxLifetime = pool.ConnMaxLifetime
	}
	if pool.ConnMaxIdleTime > 0 {
		opts.ConnMaxIdleTime = pool.ConnMaxIdleTime
	}
	if pool.PingTimeout > 0 {
		opts.PingTimeout = pool.PingTimeout
	}
	return opts
}

// Connect opens a *sql.DB for DATABASE_URL and verifies connectivity.
// The returned handle is meant to be shared by all repositories.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
		"max_open": stats.MaxOpenConnections,
	})
	return db, nil
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 5
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}
