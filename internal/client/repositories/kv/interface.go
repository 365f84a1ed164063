package kv

import (
	"context"
)

// Repository is a byte-oriented key/value store.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not an
// error. WithTx runs fn against a transactional view: either every write made
// through that view is applied or none is.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}
