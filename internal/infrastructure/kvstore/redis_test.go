package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb, namespace)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s, _ := newMiniredisStore(t, "test:")
		return s
	})
}

func TestRedisStoreNamespacesKeys(t *testing.T) {
	s, mr := newMiniredisStore(t, "market:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users:u1", map[string]string{"id": "u1"}))
	assert.True(t, mr.Exists("market:users:u1"))
	assert.False(t, mr.Exists("users:u1"))

	entries, err := s.ScanPrefix(ctx, "users:")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users:u1", entries[0].Key)
}
