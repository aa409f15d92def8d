package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"statusgate/internal/platform/config"
)

// Connect opens a pgx pool and pings it.
func Connect(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pgxCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pgxCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pgxCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pgxCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	logger.Info("connected to postgres",
		"max_conns", pgxCfg.MaxConns,
		"min_conns", pgxCfg.MinConns,
	)
	return pool, nil
}

// Tables names the two status tables.
type Tables struct {
	Resolved string
	Pending  string
}

// EnsureSchema creates the status tables when they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables Tables) error {
	resolved := pgx.Identifier{tables.Resolved}.Sanitize()
	pending := pgx.Identifier{tables.Pending}.Sanitize()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			subject_id     TEXT PRIMARY KEY,
			message        TEXT NOT NULL,
			classification TEXT NOT NULL,
			color_code     TEXT NOT NULL,
			expires_at     TIMESTAMPTZ NOT NULL
		)`, resolved),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			subject_id TEXT PRIMARY KEY,
			token      TEXT NOT NULL,
			request_id TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`, pending),
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
