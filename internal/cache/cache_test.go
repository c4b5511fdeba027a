package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "triggers:30:3", Key("triggers", 30, 3))
	assert.Equal(t, "sleep:7:0", Key("sleep", 7, 0))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var p Provider = Noop{}
	require.NoError(t, p.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := p.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, p.Del(ctx, "k"))
	assert.NoError(t, p.Close())
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Hour)

	_, err := m.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	value := []byte(`{"correlation":0.5}`)
	require.NoError(t, m.Set(ctx, "sleep:30:0", value, 0))
	value[0] = 'X'

	got, err := m.Get(ctx, "sleep:30:0")
	require.NoError(t, err)
	assert.Equal(t, `{"correlation":0.5}`, string(got))

	got[0] = 'Y'
	again, err := m.Get(ctx, "sleep:30:0")
	require.NoError(t, err)
	assert.Equal(t, `{"correlation":0.5}`, string(again))
}

func TestMemory_PerEntryTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Hour)
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := m.Get(ctx, "k")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_EvictsBySize(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Hour)
	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Set(ctx, "c", []byte("3"), 0))

	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 2, m.Len())
}

func TestMemory_DelAndClose(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, 0)
	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Del(ctx, "a"))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	p, err := Open(ctx, Config{Backend: BackendMemory, Size: 8, TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, p)

	p, err = Open(ctx, Config{Backend: BackendNone})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)

	_, err = Open(ctx, Config{Backend: "memcached"})
	assert.Error(t, err)
}

func TestNewRedis_RequiresAddr(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestNewRedis_UnreachableFailsFast(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	})
	assert.Error(t, err)
}
