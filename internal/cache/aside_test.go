package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardbinder/internal/config"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

type entry struct {
	ID int `json:"id"`
}

func newCollection(t *testing.T) *storage.Collection[entry] {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return storage.NewCollection[entry](storage.New(storage.NewMemory(), "test", log), storage.KeyUserCards)
}

func seedOf(ids ...int) func() []entry {
	return func() []entry {
		out := make([]entry, 0, len(ids))
		for _, id := range ids {
			out = append(out, entry{ID: id})
		}
		return out
	}
}

func TestLoad_MissSeedsStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	coll := newCollection(t)
	a := NewAside(Source[entry]{Collection: coll, Seed: seedOf(1, 2), Latency: latency.None()})

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 1}, {ID: 2}}, got)

	stored, err := coll.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestLoad_HitReturnsStoredAndRefreshes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	coll := newCollection(t)
	require.NoError(t, coll.Write(ctx, []entry{{ID: 9}}))

	var refreshed atomic.Int32
	a := NewAside(Source[entry]{
		Collection: coll,
		Seed:       seedOf(1),
		Latency:    latency.None(),
		Refresher: RefresherFunc(func(ctx context.Context, key storage.Key) error {
			assert.Equal(t, storage.KeyUserCards, key)
			refreshed.Add(1)
			return nil
		}),
	})

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 9}}, got)

	a.Wait()
	assert.Equal(t, int32(1), refreshed.Load())
}

func TestLoad_NopRefresherLeavesDataAlone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	coll := newCollection(t)
	require.NoError(t, coll.Write(ctx, []entry{{ID: 5}}))

	a := NewAside(Source[entry]{Collection: coll, Seed: seedOf(1), Latency: latency.None()})
	_, err := a.Load(ctx)
	require.NoError(t, err)
	a.Wait()

	stored, err := coll.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 5}}, stored)
}

func TestReseed_OverwritesCollection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	coll := newCollection(t)
	require.NoError(t, coll.Write(ctx, []entry{{ID: 5}}))

	a := NewAside(Source[entry]{
		Collection: coll,
		Seed:       seedOf(1, 2, 3),
		Latency:    latency.None(),
		Refresher:  Reseed(coll, seedOf(1, 2, 3)),
	})
	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 5}}, got)

	a.Wait()
	stored, err := coll.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 1}, {ID: 2}, {ID: 3}}, stored)
}

func TestLoad_ConcurrentMissesAllSucceed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seeds atomic.Int32
	a := NewAside(Source[entry]{
		Collection: newCollection(t),
		Seed: func() []entry {
			seeds.Add(1)
			return []entry{{ID: 1}}
		},
		Latency: latency.None(),
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := a.Load(ctx)
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()
	a.Wait()

	assert.LessOrEqual(t, seeds.Load(), int32(8))
	assert.GreaterOrEqual(t, seeds.Load(), int32(1))
}

func TestLoad_SharedSeedIgnoresOtherCallersDeadline(t *testing.T) {
	t.Parallel()

	coll := newCollection(t)
	a := NewAside(Source[entry]{
		Collection: coll,
		Seed:       seedOf(1, 2),
		Latency:    latency.New(config.LatencyConfig{Read: 150 * time.Millisecond}),
	})

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var (
		wg       sync.WaitGroup
		shortErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, shortErr = a.Load(short)
	}()
	// let the short caller start the seed first
	time.Sleep(5 * time.Millisecond)

	got, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: 1}, {ID: 2}}, got)

	wg.Wait()
	assert.ErrorIs(t, shortErr, context.DeadlineExceeded)

	stored, err := coll.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestLoad_CancelledMissDoesNotSeed(t *testing.T) {
	t.Parallel()

	coll := newCollection(t)
	a := NewAside(Source[entry]{Collection: coll, Seed: seedOf(1), Latency: latency.None()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Load(ctx)
	require.True(t, errors.Is(err, context.Canceled))

	stored, err := coll.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}
