package storage_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/storage"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBackend(t *testing.T) (*storage.RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := storage.NewRedisBackend(client, "taskboard:")
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func TestRedisBackend_PrefixedKeys(t *testing.T) {
	ctx := context.Background()
	b, mr := newRedisBackend(t)

	require.NoError(t, b.Set(ctx, "tb_auth", []byte(`{"loggedIn":true}`)))
	raw, err := mr.Get("taskboard:tb_auth")
	require.NoError(t, err)
	assert.Equal(t, `{"loggedIn":true}`, raw)

	got, err := b.Get(ctx, "tb_auth")
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))

	require.NoError(t, b.Delete(ctx, "tb_auth"))
	assert.False(t, mr.Exists("taskboard:tb_auth"))
	_, err = b.Get(ctx, "tb_auth")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestRedisBackend_SetMany(t *testing.T) {
	ctx := context.Background()
	b, mr := newRedisBackend(t)

	require.NoError(t, b.SetMany(ctx, map[string][]byte{
		"tb_tasks": []byte(`[]`),
		"tb_log":   []byte(`[]`),
	}))
	assert.True(t, mr.Exists("taskboard:tb_tasks"))
	assert.True(t, mr.Exists("taskboard:tb_log"))
}

func TestRedisBackend_OutageDegradesAdapter(t *testing.T) {
	ctx := context.Background()
	b, mr := newRedisBackend(t)
	a := storage.NewAdapter(b, nil)

	a.Write(ctx, "tb_remember", domain.RememberedEmail{Email: "intern@demo.com"})
	mr.Close()

	assert.NotPanics(t, func() {
		a.Write(ctx, "tb_remember", domain.RememberedEmail{Email: "other@demo.com"})
	})
	var r domain.RememberedEmail
	assert.False(t, a.Read(ctx, "tb_remember", &r))
	assert.GreaterOrEqual(t, a.Failures(), 2)
}
