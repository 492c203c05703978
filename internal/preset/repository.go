// Package preset serves the read-only system catalog (preset decks and the
// system card pool) and adopts preset decks into the user's collection.
package preset

import (
	"context"
	"log/slog"

	"github.com/youruser/cardbinder/internal/cache"
	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

// Options configures a Repository.
type Options struct {
	Latency *latency.Simulator
	// ReseedPresets makes every cache hit on the preset decks rewrite them
	// from the catalog in the background.
	ReseedPresets bool
	// Decks overrides DefaultDecks.
	Decks func() []deck.PresetDeck
	// SystemCards overrides cards.SystemCatalog.
	SystemCards func() []cards.Card
	Logger      *slog.Logger
}

// Repository is read-only: it never mutates either collection outside
// seeding and refresh.
type Repository struct {
	presets *cache.Aside[deck.PresetDeck]
	system  *cache.Aside[cards.Card]
	latency *latency.Simulator
}

// NewRepository creates the preset repository over store.
func NewRepository(store *storage.Store, opts Options) *Repository {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	decks := opts.Decks
	if decks == nil {
		decks = DefaultDecks
	}
	system := opts.SystemCards
	if system == nil {
		system = cards.SystemCatalog
	}

	presetColl := storage.NewCollection[deck.PresetDeck](store, storage.KeyPresetDecks)
	var refresher cache.Refresher = cache.NopRefresher{}
	if opts.ReseedPresets {
		refresher = cache.Reseed(presetColl, decks)
	}

	return &Repository{
		presets: cache.NewAside(cache.Source[deck.PresetDeck]{
			Collection: presetColl,
			Seed:       decks,
			Latency:    opts.Latency,
			MissDelay:  latency.Read,
			Refresher:  refresher,
			Logger:     log,
		}),
		system: cache.NewAside(cache.Source[cards.Card]{
			Collection: storage.NewCollection[cards.Card](store, storage.KeySystemCards),
			Seed:       system,
			Latency:    opts.Latency,
			MissDelay:  latency.System,
			Logger:     log,
		}),
		latency: opts.Latency,
	}
}

// WaitBackground blocks until scheduled background refreshes finish.
func (r *Repository) WaitBackground() {
	r.presets.Wait()
	r.system.Wait()
}

// ListDecks returns the preset decks, seeding the catalog on first access.
func (r *Repository) ListDecks(ctx context.Context) ([]deck.PresetDeck, error) {
	return r.presets.Load(ctx)
}

// GetDeck returns the preset deck with id, or nil when there is none.
func (r *Repository) GetDeck(ctx context.Context, id int) (*deck.PresetDeck, error) {
	decks, err := r.ListDecks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range decks {
		if decks[i].ID == id {
			d := decks[i]
			return &d, nil
		}
	}
	return nil, nil
}

// ListSystemCards returns the system card pool.
func (r *Repository) ListSystemCards(ctx context.Context) ([]cards.Card, error) {
	return r.system.Load(ctx)
}

// ListCardsForDeck materializes a preset deck against the system pool with the
// same rules as the user read path.
func (r *Repository) ListCardsForDeck(ctx context.Context, presetID int) ([]cards.Card, error) {
	d, err := r.GetDeck(ctx, presetID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []cards.Card{}, nil
	}

	pool, err := r.ListSystemCards(ctx)
	if err != nil {
		return nil, err
	}
	out := cards.Resolve(d.CardIDs, pool)

	if err := r.latency.Wait(ctx, latency.Settle); err != nil {
		return nil, err
	}
	return out, nil
}
