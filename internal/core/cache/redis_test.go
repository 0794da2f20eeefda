package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSONCachesValue(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	var loads atomic.Int32
	load := func(context.Context) (*item, error) {
		loads.Add(1)
		return &item{Name: "a"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "a", got.Name)
	}
	assert.EqualValues(t, 1, loads.Load())
	assert.True(t, mr.Exists("k"))
}

func TestGetOrLoadJSONDoesNotCacheErrors(t *testing.T) {
	c, mr := newCache(t)
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestGetOrLoadFallsBackWhenRedisIsDown(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("v"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "v", string(b))
}

func TestGenerationAndBump(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	g, err := c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 0, g)

	require.NoError(t, c.Bump(ctx, "gen"))
	require.NoError(t, c.Bump(ctx, "gen"))
	g, err = c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 2, g)
}
