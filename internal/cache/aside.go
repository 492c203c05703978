// Package cache implements the cache-aside read path shared by the repositories:
// serve the stored collection when it has data, otherwise pay the simulated
// latency, seed it from a catalog and serve that.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

const refreshTimeout = 30 * time.Second

// Refresher brings a cached collection up to date after a hit.
// It runs detached from the caller and its result is only logged.
type Refresher interface {
	Refresh(ctx context.Context, key storage.Key) error
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, key storage.Key) error

func (f RefresherFunc) Refresh(ctx context.Context, key storage.Key) error { return f(ctx, key) }

// NopRefresher leaves the cache as is. It is the default strategy while the
// origin is simulated.
type NopRefresher struct{}

func (NopRefresher) Refresh(context.Context, storage.Key) error { return nil }

// Reseed returns a Refresher that overwrites coll with a fresh catalog.
// Only suitable for read-only collections such as the preset catalog.
func Reseed[T any](coll *storage.Collection[T], seed func() []T) Refresher {
	return RefresherFunc(func(ctx context.Context, _ storage.Key) error {
		return coll.Write(ctx, seed())
	})
}

// Source describes one cache-aside collection.
type Source[T any] struct {
	Collection *storage.Collection[T]
	// Seed returns the origin data used on a miss. It must return a fresh slice.
	Seed      func() []T
	Latency   *latency.Simulator
	MissDelay latency.Kind
	Refresher Refresher
	Logger    *slog.Logger
}

// Aside serves one collection with the cache-aside strategy.
type Aside[T any] struct {
	src   Source[T]
	log   *slog.Logger
	group singleflight.Group
	wg    sync.WaitGroup
}

// NewAside creates a cache-aside reader. A nil Refresher means NopRefresher.
func NewAside[T any](src Source[T]) *Aside[T] {
	if src.Refresher == nil {
		src.Refresher = NopRefresher{}
	}
	if src.Seed == nil {
		src.Seed = func() []T { return []T{} }
	}
	log := src.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Aside[T]{
		src: src,
		log: log.With("component", "cache", "key", string(src.Collection.Key())),
	}
}

// Collection exposes the backing collection for read-modify-write callers.
func (a *Aside[T]) Collection() *storage.Collection[T] { return a.src.Collection }

// Load returns the cached collection, seeding it on a miss.
// Concurrent misses share one seeding pass.
func (a *Aside[T]) Load(ctx context.Context) ([]T, error) {
	items, err := a.src.Collection.Read(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		a.refreshInBackground()
		return items, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The seed is shared, so it must not inherit one caller's deadline.
	// Each caller waits on its own ctx instead.
	ch := a.group.DoChan("seed", func() (any, error) {
		seedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		if err := a.src.Latency.Wait(seedCtx, a.src.MissDelay); err != nil {
			return nil, err
		}
		if err := a.src.Collection.Write(seedCtx, a.src.Seed()); err != nil {
			return nil, err
		}
		a.log.DebugContext(seedCtx, "cache seeded")
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
	}

	// Re-read so every caller gets its own decoded copy.
	return a.src.Collection.Read(ctx)
}

// Wait blocks until every scheduled background refresh has finished.
func (a *Aside[T]) Wait() {
	a.wg.Wait()
}

func (a *Aside[T]) refreshInBackground() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := a.src.Latency.Wait(ctx, latency.Refresh); err != nil {
			return
		}
		if err := a.src.Refresher.Refresh(ctx, a.src.Collection.Key()); err != nil {
			a.log.WarnContext(ctx, "background refresh failed", slog.String("error", err.Error()))
			return
		}
		a.log.DebugContext(ctx, "background refresh complete")
	}()
}
