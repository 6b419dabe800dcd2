package redis

import (
	"Pollhive/internal/pkg/consts"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	prev := Rdb
	Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { Rdb = prev })
	return mr
}

// 写入、读取、删除一条推荐缓存的完整往返
func TestRecommendationCacheRoundTrip(t *testing.T) {
	mr := newTestRedis(t)
	ctx := context.Background()

	pollIDs := []string{"p1", "p2", "p3"}
	require.NoError(t, CacheRecommendations(ctx, "u1", pollIDs, time.Hour))

	got, err := GetCachedRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, pollIDs, got)

	ttl := mr.TTL(consts.RecommendationKey + "u1")
	assert.Equal(t, time.Hour, ttl)

	require.NoError(t, DeleteCachedRecommendations(ctx, "u1"))

	got, err = GetCachedRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecommendationCacheMiss(t *testing.T) {
	newTestRedis(t)

	got, err := GetCachedRecommendations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// 过期后的缓存等同未命中
func TestRecommendationCacheExpires(t *testing.T) {
	mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, CacheRecommendations(ctx, "u1", []string{"p1"}, time.Second))
	mr.FastForward(2 * time.Second)

	got, err := GetCachedRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
