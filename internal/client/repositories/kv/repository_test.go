package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) Repository {
	t.Helper()
	repo, db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func newRedis(t *testing.T) Repository {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	repo, err := NewRedisRepository(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), "scholarhub-test:"+t.Name()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Clear(context.Background())
		_ = repo.Close()
	})
	return repo
}

var drivers = map[string]func(t *testing.T) Repository{
	"memory": func(*testing.T) Repository { return NewMemoryRepository() },
	"sqlite": newSQLite,
	"redis":  newRedis,
}

func forEachDriver(t *testing.T, fn func(t *testing.T, r Repository)) {
	for name, mk := range drivers {
		t.Run(name, func(t *testing.T) {
			fn(t, mk(t))
		})
	}
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x02}, v)
	})
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		v, err := r.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), v)
	})
}

func TestList_ReturnsAllPairs(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
		require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Equal(t, []byte{0xAA}, m["a"])
		assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
	})
}

func TestDelete_RemovesKeys_AndIsIdempotent(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
		require.NoError(t, r.Set(ctx, "y", []byte{0x02}))
		require.NoError(t, r.Set(ctx, "z", []byte{0x03}))
		require.NoError(t, r.Delete(ctx, "x", "y"))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"z": {0x03}}, m)

		require.NoError(t, r.Delete(ctx, "x"))
		require.NoError(t, r.Delete(ctx))
	})
}

func TestClear_RemovesAllKeys(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "a", []byte{1}))
		require.NoError(t, r.Set(ctx, "b", []byte{2}))
		require.NoError(t, r.Clear(ctx))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}

func TestWithTx_CommitsAllWrites(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "stale", []byte("1")))

		err := r.WithTx(ctx, func(ctx context.Context, tx Repository) error {
			if err := tx.Set(ctx, "auth_token", []byte("abc")); err != nil {
				return err
			}
			if err := tx.Set(ctx, "auth_user", []byte(`{"id":"1"}`)); err != nil {
				return err
			}
			return tx.Delete(ctx, "stale")
		})
		require.NoError(t, err)

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{
			"auth_token": []byte("abc"),
			"auth_user":  []byte(`{"id":"1"}`),
		}, m)
	})
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "auth_token", []byte("old")))

		boom := errors.New("boom")
		err := r.WithTx(ctx, func(ctx context.Context, tx Repository) error {
			require.NoError(t, tx.Set(ctx, "auth_token", []byte("new")))
			require.NoError(t, tx.Set(ctx, "auth_user", []byte("u")))
			return boom
		})
		require.ErrorIs(t, err, boom)

		v, err := r.Get(ctx, "auth_token")
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), v)

		v, err = r.Get(ctx, "auth_user")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestWithTx_ReadsSeeOwnWrites(t *testing.T) {
	forEachDriver(t, func(t *testing.T, r Repository) {
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "keep", []byte("k")))

		err := r.WithTx(ctx, func(ctx context.Context, tx Repository) error {
			require.NoError(t, tx.Set(ctx, "a", []byte("1")))
			v, err := tx.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("1"), v)

			require.NoError(t, tx.Clear(ctx))
			v, err = tx.Get(ctx, "keep")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, tx.Set(ctx, "b", []byte("2")))
			m, err := tx.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"b": []byte("2")}, m)
			return nil
		})
		require.NoError(t, err)

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"b": []byte("2")}, m)
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'Y'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	repo, closer, err := Open(ctx, Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepository{}, repo)
	require.NoError(t, closer.Close())

	repo, closer, err = Open(ctx, Options{DSN: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepository{}, repo)
	require.NoError(t, closer.Close())

	_, _, err = Open(ctx, Options{Driver: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}
