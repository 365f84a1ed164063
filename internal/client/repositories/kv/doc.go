// Package kv provides the client-side durable key/value storage that backs
// the session store.
//
// # Overview
//
// The package defines a Repository interface (Get/Set/Delete/List/Clear plus
// WithTx for all-or-nothing writes) and three implementations:
//
//   - SQLiteRepository: default; a local SQLite file migrated with goose
//   - MemoryRepository: process-local, used by tests and the "memory" driver
//   - RedisRepository: a Redis hash, for sessions shared between machines
//
// Open selects an implementation from Options.
//
// Typical Usage
//
//	repo, closer, err := kv.Open(ctx, kv.Options{Driver: kv.DriverSQLite, DSN: "session.db"})
//	defer closer.Close()
//	err = repo.WithTx(ctx, func(ctx context.Context, tx kv.Repository) error {
//	    if err := tx.Set(ctx, "auth_token", token); err != nil {
//	        return err
//	    }
//	    return tx.Set(ctx, "auth_user", user)
//	})
package kv
