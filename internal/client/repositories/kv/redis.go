package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores all pairs as fields of one Redis hash.
type RedisRepository struct {
	client *redis.Client
	hash   string
	txMu   chan struct{}
}

// NewRedisRepository connects to addr and verifies the connection with PING.
// prefix namespaces the hash key, e.g. "scholarhub:" gives "scholarhub:kv".
func NewRedisRepository(ctx context.Context, addr, password, prefix string) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return newRedisRepository(client, prefix), nil
}

func newRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, hash: prefix + table, txMu: make(chan struct{}, 1)}
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.HSet(ctx, r.hash, key, cloneBytes(value)).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.hash, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete kv%v: %w", keys, err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.client.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	result := make(map[string][]byte, len(all))
	for k, v := range all {
		result[k] = []byte(v)
	}
	return result, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

// WithTx stages writes locally and flushes them in one MULTI/EXEC block.
func (r *RedisRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	select {
	case r.txMu <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-r.txMu }()

	tx := newStagedTx(r)
	if err := fn(ctx, tx); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if tx.cleared {
			p.Del(ctx, r.hash)
		}
		if deleted := tx.deletedKeys(); len(deleted) > 0 {
			p.HDel(ctx, r.hash, deleted...)
		}
		if len(tx.sets) > 0 {
			fields := make([]any, 0, len(tx.sets)*2)
			for k, v := range tx.sets {
				fields = append(fields, k, v)
			}
			p.HSet(ctx, r.hash, fields...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit kv tx: %w", err)
	}
	return nil
}
