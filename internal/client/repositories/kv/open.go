package kv

import (
	"context"
	"fmt"
	"io"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Options selects and configures a storage driver.
type Options struct {
	Driver string
	// DSN is the SQLite file path or DSN.
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the repository selected by opts.Driver. An empty driver means
// SQLite. The returned Closer releases the underlying connection.
func Open(ctx context.Context, opts Options) (Repository, io.Closer, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		repo, db, err := OpenSQLite(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, db, nil
	case DriverMemory:
		return NewMemoryRepository(), nopCloser{}, nil
	case DriverRedis:
		repo, err := NewRedisRepository(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
