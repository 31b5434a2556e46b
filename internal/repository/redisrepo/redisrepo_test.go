package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func TestGetSetJSON(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	repo := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	_, err := Get[cachedThing](repo.Default, ctx, PostKey(1))
	require.ErrorIs(t, err, redis.Nil)

	require.NoError(t, repo.SetJSON(ctx, PostKey(1), cachedThing{Name: "one"}, time.Minute))

	thing, err := Get[cachedThing](repo.Default, ctx, PostKey(1))
	require.NoError(t, err)
	require.Equal(t, "one", thing.Name)

	mr.FastForward(2 * time.Minute)
	_, err = Get[cachedThing](repo.Default, ctx, PostKey(1))
	require.ErrorIs(t, err, redis.Nil)
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	repo := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, repo.SetJSON(ctx, GroupKey("cats"), nil, time.Minute))
	_, err := Get[cachedThing](repo.Default, ctx, GroupKey("cats"))
	require.ErrorIs(t, err, redis.Nil)

	require.NoError(t, repo.Del(ctx, GroupKey("cats")).Err())
	require.False(t, mr.Exists(GroupKey("cats")))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewNoop()

	require.NoError(t, repo.SetJSON(ctx, AuthorKey("a"), cachedThing{Name: "a"}, time.Minute))
	_, err := Get[cachedThing](repo.Default, ctx, AuthorKey("a"))
	require.ErrorIs(t, err, redis.Nil)
	require.NoError(t, repo.Del(ctx, AuthorKey("a")).Err())
}
