package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/storage/sqlite"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "boostme_logs")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "boostme_logs", `[]`))
	require.NoError(t, s.Set(ctx, "boostme_total_missions", "3"))

	v, ok, err := s.Get(ctx, "boostme_logs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Set(ctx, "boostme_total_missions", "4"))
	v, _, err = s.Get(ctx, "boostme_total_missions")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	require.NoError(t, s.Remove(ctx, "boostme_logs"))
	_, ok, err = s.Get(ctx, "boostme_logs")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "missing"))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Get(ctx, "boostme_total_missions")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLStore(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	exerciseStore(t, NewSQL(db))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedis(client, "boostme"))
}

func TestRedisClearKeepsForeignKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	require.NoError(t, mr.Set("other:key", "keep"))
	s := NewRedis(client, "boostme")
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, k, "1"))
	}
	assert.True(t, mr.Exists("boostme:a"))

	require.NoError(t, s.Clear(ctx))

	assert.False(t, mr.Exists("boostme:a"))
	assert.False(t, mr.Exists("boostme:c"))
	got, err := mr.Get("other:key")
	require.NoError(t, err)
	assert.Equal(t, "keep", got)
}
