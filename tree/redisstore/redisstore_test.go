package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pbanos/bonsai/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
}

func TestKeyFor(t *testing.T) {
	s, err := New(unreachableClient(), "bonsai", 0)
	require.NoError(t, err)
	assert.Equal(t, "bonsai:iris", s.keyFor("iris"))
}

func TestNewInvalidCacheSize(t *testing.T) {
	_, err := New(unreachableClient(), "bonsai", -1)
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	s, err := New(unreachableClient(), "bonsai", 4)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, s.Save(ctx, "iris", tree.NewLeaf(1)))
	_, err = s.Load(ctx, "iris")
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, s.Delete(ctx, "iris"))
}

func TestLoadServedFromCache(t *testing.T) {
	s, err := New(unreachableClient(), "bonsai", 4)
	require.NoError(t, err)
	root := tree.NewLeaf(3)
	s.cache.Add("iris", root)
	loaded, err := s.Load(context.Background(), "iris")
	require.NoError(t, err)
	assert.Same(t, root, loaded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Load(ctx, "iris")
	assert.Equal(t, context.Canceled, err)
}

func liveStore(t *testing.T, cacheSize int) *Store {
	addr := os.Getenv("BONSAI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BONSAI_TEST_REDIS_ADDR not set")
	}
	rc := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rc.Close() })
	s, err := New(rc, fmt.Sprintf("bonsai-test-%d", time.Now().UnixNano()), cacheSize)
	require.NoError(t, err)
	return s
}

func TestSaveLoadDelete(t *testing.T) {
	for _, cacheSize := range []int{0, 2} {
		t.Run(fmt.Sprintf("cache %d", cacheSize), func(t *testing.T) {
			s := liveStore(t, cacheSize)
			ctx := context.Background()
			root := tree.NewSplit(0, 2.25, tree.NewLeaf(0), tree.NewSplit(1, -3, tree.NewLeaf(1), tree.NewLeaf(2)))

			_, err := s.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrTreeNotFound)

			require.NoError(t, s.Save(ctx, "t", root))
			loaded, err := s.Load(ctx, "t")
			require.NoError(t, err)
			assert.Equal(t, root, loaded)

			require.NoError(t, s.Delete(ctx, "t"))
			_, err = s.Load(ctx, "t")
			assert.ErrorIs(t, err, ErrTreeNotFound)
		})
	}
}
