package kv

import (
	"context"
	"sync"
)

// MemoryRepository keeps everything in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return cloneBytes(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = cloneBytes(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}

func (r *MemoryRepository) List(context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		result[k] = cloneBytes(v)
	}
	return result, nil
}

func (r *MemoryRepository) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string][]byte)
	return nil
}

// WithTx stages writes and applies them under one lock when fn succeeds.
// Transactions are serialized.
func (r *MemoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	tx := newStagedTx(r)
	if err := fn(ctx, tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.cleared {
		r.data = make(map[string][]byte)
	}
	for k := range tx.deletes {
		delete(r.data, k)
	}
	for k, v := range tx.sets {
		r.data[k] = v
	}
	return nil
}
