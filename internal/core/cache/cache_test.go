package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type brokenKV struct{ *MemoryKV }

func (brokenKV) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (brokenKV) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func TestThrough(t *testing.T) {
	c := New(NewMemoryKV(), time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Through(ctx, c, Key(Categories, "page", "1"), fetch)
	require.NoError(t, err)
	second, err := Through(ctx, c, Key(Categories, "page", "1"), fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestThrough_ErrorNotCached(t *testing.T) {
	c := New(NewMemoryKV(), time.Minute, zaptest.NewLogger(t))
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return 0, errors.New("upstream down")
	}

	_, err := Through(context.Background(), c, "k", fetch)
	assert.Error(t, err)
	_, err = Through(context.Background(), c, "k", fetch)
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestThrough_NilCache(t *testing.T) {
	v, err := Through(context.Background(), (*Cache)(nil), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCache_FailuresAreSwallowed(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	c := New(brokenKV{NewMemoryKV()}, time.Minute, zap.New(core))

	v, err := Through(context.Background(), c, "k", func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, recorded.FilterMessage("Cache read failed").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Cache write failed").Len())
}

func TestMemoryKV_Expiry(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Now()
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Second))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	now = now.Add(2 * time.Second)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInvalidator(t *testing.T) {
	kv := NewMemoryKV()
	c := New(kv, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()
	c.Store(ctx, Key(Categories, "page", "1"), 1)
	c.Store(ctx, Key(Types, "page", "1"), 1)
	c.Store(ctx, Key(Subtypes, "page", "1"), 1)
	c.Store(ctx, Key(Structure, "residence", "x"), 1)

	inv := NewInvalidator(c, zaptest.NewLogger(t))
	require.NoError(t, inv.HandleEvent(ctx, events.NewEvent(models.EntityType, events.Updated, uuid.New(), nil)))

	var v int
	assert.True(t, c.Load(ctx, Key(Categories, "page", "1"), &v))
	assert.False(t, c.Load(ctx, Key(Types, "page", "1"), &v))
	assert.False(t, c.Load(ctx, Key(Subtypes, "page", "1"), &v))
	assert.True(t, c.Load(ctx, Key(Structure, "residence", "x"), &v))

	require.NoError(t, inv.HandleEvent(ctx, events.NewEvent(models.EntityComponent, events.Created, uuid.New(), nil)))
	assert.True(t, c.Load(ctx, Key(Categories, "page", "1"), &v))
}
