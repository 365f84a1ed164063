package kv

import (
	"context"
)

// stagedTx buffers writes on top of a base repository. Reads see the staged
// writes first. The owner applies the buffer once fn has succeeded.
type stagedTx struct {
	base    Repository
	sets    map[string][]byte
	deletes map[string]struct{}
	cleared bool
}

func newStagedTx(base Repository) *stagedTx {
	return &stagedTx{
		base:    base,
		sets:    make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (s *stagedTx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := s.sets[key]; ok {
		return cloneBytes(v), nil
	}
	if _, ok := s.deletes[key]; ok || s.cleared {
		return nil, nil
	}
	return s.base.Get(ctx, key)
}

func (s *stagedTx) Set(_ context.Context, key string, value []byte) error {
	s.sets[key] = cloneBytes(value)
	delete(s.deletes, key)
	return nil
}

func (s *stagedTx) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.sets, k)
		s.deletes[k] = struct{}{}
	}
	return nil
}

func (s *stagedTx) Clear(context.Context) error {
	s.cleared = true
	s.sets = make(map[string][]byte)
	s.deletes = make(map[string]struct{})
	return nil
}

func (s *stagedTx) List(ctx context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte)
	if !s.cleared {
		base, err := s.base.List(ctx)
		if err != nil {
			return nil, err
		}
		for k, v := range base {
			if _, gone := s.deletes[k]; !gone {
				result[k] = v
			}
		}
	}
	for k, v := range s.sets {
		result[k] = cloneBytes(v)
	}
	return result, nil
}

func (s *stagedTx) WithTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	return fn(ctx, s)
}

func (s *stagedTx) deletedKeys() []string {
	keys := make([]string, 0, len(s.deletes))
	for k := range s.deletes {
		keys = append(keys, k)
	}
	return keys
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte(nil), b...)
}
