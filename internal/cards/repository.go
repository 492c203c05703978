package cards

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/youruser/cardbinder/internal/apperr"
	"github.com/youruser/cardbinder/internal/cache"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

// DeckFinder resolves a user deck by id, returning nil when absent.
type DeckFinder interface {
	Get(ctx context.Context, id int) (*deck.UserDeck, error)
}

// Options configures a Repository.
type Options struct {
	Latency   *latency.Simulator
	Refresher cache.Refresher
	// Seed overrides DefaultCatalog.
	Seed   func() []Card
	Logger *slog.Logger
}

// Repository manages the user's card pool.
// Like the deck repository, mutations are unguarded read-modify-write
// sequences and concurrent writers race.
type Repository struct {
	cache   *cache.Aside[Card]
	cards   *storage.Collection[Card]
	decks   *storage.Collection[deck.UserDeck]
	finder  DeckFinder
	latency *latency.Simulator
	log     *slog.Logger
}

// NewRepository creates a card repository. finder resolves decks for
// ListForDeck; Delete cascades directly through the user deck collection.
func NewRepository(store *storage.Store, finder DeckFinder, opts Options) *Repository {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	seed := opts.Seed
	if seed == nil {
		seed = DefaultCatalog
	}
	coll := storage.NewCollection[Card](store, storage.KeyUserCards)
	return &Repository{
		cache: cache.NewAside(cache.Source[Card]{
			Collection: coll,
			Seed:       seed,
			Latency:    opts.Latency,
			MissDelay:  latency.Read,
			Refresher:  opts.Refresher,
			Logger:     log,
		}),
		cards:   coll,
		decks:   storage.NewCollection[deck.UserDeck](store, storage.KeyUserDecks),
		finder:  finder,
		latency: opts.Latency,
		log:     log.With("component", "cards"),
	}
}

// Collection exposes the raw card collection for cross-collection writers.
func (r *Repository) Collection() *storage.Collection[Card] { return r.cards }

// WaitBackground blocks until scheduled background refreshes finish.
func (r *Repository) WaitBackground() { r.cache.Wait() }

// List returns the user's cards, seeding the starter catalog on first access.
func (r *Repository) List(ctx context.Context) ([]Card, error) {
	return r.cache.Load(ctx)
}

// ListForDeck materializes the deck's cards in deck order, keeping duplicates.
// Ids with no matching card are dropped; an unknown deck yields an empty slice.
func (r *Repository) ListForDeck(ctx context.Context, deckID int) ([]Card, error) {
	d, err := r.finder.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []Card{}, nil
	}

	pool, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := Resolve(d.CardIDs, pool)

	if err := r.latency.Wait(ctx, latency.Settle); err != nil {
		return nil, err
	}
	return out, nil
}

// Add stores a copy of draft under the next free id and returns it.
// The draft's own id is ignored.
func (r *Repository) Add(ctx context.Context, draft Card) (Card, error) {
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return Card{}, err
	}

	stored, err := r.cards.Read(ctx)
	if err != nil {
		return Card{}, err
	}

	c := draft.Clone()
	c.ID = NextID(stored)
	stored = append(stored, c)
	if err := r.cards.Write(ctx, stored); err != nil {
		return Card{}, err
	}

	r.log.InfoContext(ctx, "card added", slog.Int("card_id", c.ID))
	return c, nil
}

// Update merges the set fields of p onto the stored card with p.ID.
// It returns an error wrapping apperr.ErrNotFound when no such card exists.
func (r *Repository) Update(ctx context.Context, p Patch) (Card, error) {
	if p.Category != nil && !p.Category.Valid() {
		return Card{}, apperr.NewValidationError("cardCategory", "unknown category")
	}
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return Card{}, err
	}

	stored, err := r.cards.Read(ctx)
	if err != nil {
		return Card{}, err
	}
	idx := slices.IndexFunc(stored, func(c Card) bool { return c.ID == p.ID })
	if idx < 0 {
		return Card{}, apperr.NotFound("card", p.ID)
	}

	p.Apply(&stored[idx])
	if err := r.cards.Write(ctx, stored); err != nil {
		return Card{}, err
	}
	return stored[idx].Clone(), nil
}

// Delete removes the card and drops its id from every user deck.
// Deleting an unknown id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return err
	}

	stored, err := r.cards.Read(ctx)
	if err != nil {
		return err
	}
	decks, err := r.decks.Read(ctx)
	if err != nil {
		return err
	}

	touched := 0
	for i := range decks {
		before := len(decks[i].CardIDs)
		decks[i].CardIDs = slices.DeleteFunc(decks[i].CardIDs, func(cid int) bool { return cid == id })
		if len(decks[i].CardIDs) != before {
			touched++
		}
	}
	if touched > 0 {
		if err := r.decks.Write(ctx, decks); err != nil {
			return err
		}
	}

	kept := slices.DeleteFunc(stored, func(c Card) bool { return c.ID == id })
	if err := r.cards.Write(ctx, kept); err != nil {
		return err
	}

	r.log.InfoContext(ctx, "card deleted",
		slog.Int("card_id", id),
		slog.Int("decks_touched", touched),
	)
	return nil
}

// Search lists the user's cards matching opt.
func (r *Repository) Search(ctx context.Context, opt FilterOptions) ([]Card, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if opt.Empty() {
		return all, nil
	}
	return Filter(all, opt), nil
}

// ValidateDraft checks a card submitted for creation by an outer surface.
func ValidateDraft(c Card) error {
	var errs []apperr.FieldError
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "required"})
	}
	if !c.Category.Valid() {
		errs = append(errs, apperr.FieldError{Field: "cardCategory", Message: "unknown category"})
	}
	if len(errs) > 0 {
		return &apperr.ValidationError{Errors: errs}
	}
	return nil
}
