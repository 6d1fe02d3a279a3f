package db

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConnectTimeout = 5 * time.Second

type NewDBPoolParams struct {
	// ConnString is a postgres URL or DSN, e.g. postgres://user@host:5432/db
	ConnString string
	// Password overrides any password in ConnString when set.
	Password string
	// MaxConns caps the pool; zero keeps the pgxpool default.
	MaxConns int32
	// ConnectTimeout bounds each dial when ConnString sets none.
	ConnectTimeout time.Duration
	TracingEnabled bool
}

// NewDBPool builds a pool for the remote plan store. pgxpool dials lazily,
// so an unreachable server surfaces on first use, not here.
func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(params.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.Password != "" {
		poolConfig.ConnConfig.Password = params.Password
	}
	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}
	if poolConfig.ConnConfig.ConnectTimeout == 0 {
		poolConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout
		if params.ConnectTimeout > 0 {
			poolConfig.ConnConfig.ConnectTimeout = params.ConnectTimeout
		}
	}
	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return pool, nil
}
