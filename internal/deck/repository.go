package deck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/youruser/cardbinder/internal/apperr"
	"github.com/youruser/cardbinder/internal/cache"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

// ErrCopyLimit is returned by AddCard when the copy limit policy is enabled
// and the deck already holds the maximum number of copies.
var ErrCopyLimit = fmt.Errorf("%w: copy limit reached", apperr.ErrValidation)

// Reasons reported by RemoveCard.
const (
	ReasonDeckNotFound  = "deck not found"
	ReasonDeckEmpty     = "deck is empty"
	ReasonCardNotInDeck = "card not in deck"
	ReasonIndexMismatch = "index does not match card"
)

// RemoveResult reports the outcome of RemoveCard. Validation failures are
// reported here rather than as errors.
type RemoveResult struct {
	Deck    *UserDeck `json:"data"`
	Success bool      `json:"success"`
	Reason  string    `json:"error,omitempty"`
}

// Options configures a Repository.
type Options struct {
	Latency   *latency.Simulator
	Refresher cache.Refresher
	// CopyLimit caps copies of one card per deck; 0 disables the cap.
	CopyLimit int
	// Seed overrides DefaultDecks.
	Seed   func() []UserDeck
	Logger *slog.Logger
}

// Repository manages the user's decks.
// Mutations pay the write latency and then read-modify-write the whole
// collection without locking; concurrent mutations are last-writer-wins.
type Repository struct {
	cache     *cache.Aside[UserDeck]
	decks     *storage.Collection[UserDeck]
	latency   *latency.Simulator
	copyLimit int
	log       *slog.Logger
}

// NewRepository creates a deck repository over store.
func NewRepository(store *storage.Store, opts Options) *Repository {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	seed := opts.Seed
	if seed == nil {
		seed = DefaultDecks
	}
	decks := storage.NewCollection[UserDeck](store, storage.KeyUserDecks)
	return &Repository{
		cache: cache.NewAside(cache.Source[UserDeck]{
			Collection: decks,
			Seed:       seed,
			Latency:    opts.Latency,
			MissDelay:  latency.Read,
			Refresher:  opts.Refresher,
			Logger:     log,
		}),
		decks:     decks,
		latency:   opts.Latency,
		copyLimit: opts.CopyLimit,
		log:       log.With("component", "deck"),
	}
}

// Collection exposes the raw deck collection for cross-collection writers.
func (r *Repository) Collection() *storage.Collection[UserDeck] { return r.decks }

// WaitBackground blocks until scheduled background refreshes finish.
func (r *Repository) WaitBackground() { r.cache.Wait() }

// List returns every stored deck, seeding the starter decks on first access.
func (r *Repository) List(ctx context.Context) ([]UserDeck, error) {
	return r.cache.Load(ctx)
}

// Get returns the deck with id, or nil when there is none.
func (r *Repository) Get(ctx context.Context, id int) (*UserDeck, error) {
	decks, err := r.List(ctx)
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

// Create stores a new empty user deck with the next free id.
func (r *Repository) Create(ctx context.Context, input CreateInput) (UserDeck, error) {
	if err := input.Validate(); err != nil {
		return UserDeck{}, err
	}
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return UserDeck{}, err
	}

	decks, err := r.decks.Read(ctx)
	if err != nil {
		return UserDeck{}, err
	}

	d := UserDeck{
		Base: Base{
			ID:          NextID(decks),
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			CoverImage:  input.CoverImage,
			Tags:        normalizeTags(input.Tags),
		},
		CardIDs: []int{},
		Kind:    KindUser,
	}
	decks = append(decks, d)
	if err := r.decks.Write(ctx, decks); err != nil {
		return UserDeck{}, err
	}

	r.log.InfoContext(ctx, "deck created",
		slog.Int("deck_id", d.ID),
		slog.String("name", d.Name),
	)
	return d, nil
}

// Delete removes the user-owned deck with id and reports whether one was removed.
// Records of another kind sharing the id are kept.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return false, err
	}

	decks, err := r.decks.Read(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]UserDeck, 0, len(decks))
	for _, d := range decks {
		if d.ID == id && d.UserOwned() {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == len(decks) {
		return false, nil
	}
	if err := r.decks.Write(ctx, kept); err != nil {
		return false, err
	}

	r.log.InfoContext(ctx, "deck deleted", slog.Int("deck_id", id))
	return true, nil
}

// UpdateInfo merges patch into the user-owned deck with id.
// It returns nil when no such deck exists; storage is then left untouched.
func (r *Repository) UpdateInfo(ctx context.Context, id int, patch InfoPatch) (*UserDeck, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return nil, err
	}

	decks, err := r.decks.Read(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOwned(decks, id)
	if idx < 0 {
		return nil, nil
	}

	patch.apply(&decks[idx])
	if err := r.decks.Write(ctx, decks); err != nil {
		return nil, err
	}

	d := decks[idx]
	return &d, nil
}

// AddCard appends cardID to the deck. Duplicates are allowed unless the copy
// limit policy is enabled. It returns nil when the deck does not exist.
func (r *Repository) AddCard(ctx context.Context, deckID, cardID int) (*UserDeck, error) {
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return nil, err
	}

	decks, err := r.decks.Read(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOwned(decks, deckID)
	if idx < 0 {
		return nil, nil
	}

	if r.copyLimit > 0 && decks[idx].Count(cardID) >= r.copyLimit {
		return nil, fmt.Errorf("deck %d card %d: %w", deckID, cardID, ErrCopyLimit)
	}

	decks[idx].CardIDs = append(decks[idx].CardIDs, cardID)
	if err := r.decks.Write(ctx, decks); err != nil {
		return nil, err
	}

	d := decks[idx]
	return &d, nil
}

// RemoveCard removes the single occurrence of cardID found at index.
// The index disambiguates between duplicates; it must point at cardID.
func (r *Repository) RemoveCard(ctx context.Context, deckID, cardID, index int) (RemoveResult, error) {
	if err := r.latency.Wait(ctx, latency.Write); err != nil {
		return RemoveResult{}, err
	}

	decks, err := r.decks.Read(ctx)
	if err != nil {
		return RemoveResult{}, err
	}
	idx := indexOwned(decks, deckID)
	if idx < 0 {
		return RemoveResult{Reason: ReasonDeckNotFound}, nil
	}

	ids := decks[idx].CardIDs
	switch {
	case len(ids) == 0:
		return RemoveResult{Reason: ReasonDeckEmpty}, nil
	case decks[idx].Count(cardID) == 0:
		return RemoveResult{Reason: ReasonCardNotInDeck}, nil
	case index < 0 || index >= len(ids) || ids[index] != cardID:
		return RemoveResult{Reason: ReasonIndexMismatch}, nil
	}

	decks[idx].CardIDs = append(ids[:index:index], ids[index+1:]...)
	if err := r.decks.Write(ctx, decks); err != nil {
		return RemoveResult{}, err
	}

	d := decks[idx]
	return RemoveResult{Deck: &d, Success: true}, nil
}

func indexOwned(decks []UserDeck, id int) int {
	for i, d := range decks {
		if d.ID == id && d.UserOwned() {
			return i
		}
	}
	return -1
}
