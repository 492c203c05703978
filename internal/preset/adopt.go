package preset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/storage"
)

// DefaultMaxDecks is the deck cap applied when none is configured.
const DefaultMaxDecks = 10

var (
	ErrDeckLimit      = errors.New("deck limit reached")
	ErrPresetNotFound = errors.New("preset not found")
)

type userDecks interface {
	List(ctx context.Context) ([]deck.UserDeck, error)
	Collection() *storage.Collection[deck.UserDeck]
}

type userCards interface {
	List(ctx context.Context) ([]cards.Card, error)
	Collection() *storage.Collection[cards.Card]
}

type catalog interface {
	GetDeck(ctx context.Context, id int) (*deck.PresetDeck, error)
	ListSystemCards(ctx context.Context) ([]cards.Card, error)
}

// AdoptResult reports the outcome of an adoption. Failures are reported
// here, never as errors.
type AdoptResult struct {
	Success bool           `json:"success"`
	Deck    *deck.UserDeck `json:"data"`
	Error   string         `json:"error,omitempty"`
}

// AdoptOptions configures an Adopter.
type AdoptOptions struct {
	Latency  *latency.Simulator
	MaxDecks int
	Logger   *slog.Logger
}

// Adopter copies preset decks into the user's collection.
type Adopter struct {
	decks    userDecks
	cards    userCards
	catalog  catalog
	latency  *latency.Simulator
	maxDecks int
	log      *slog.Logger
}

// NewAdopter creates an Adopter.
func NewAdopter(decks userDecks, cards userCards, catalog catalog, opts AdoptOptions) *Adopter {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	maxDecks := opts.MaxDecks
	if maxDecks <= 0 {
		maxDecks = DefaultMaxDecks
	}
	return &Adopter{
		decks:    decks,
		cards:    cards,
		catalog:  catalog,
		latency:  opts.Latency,
		maxDecks: maxDecks,
		log:      log.With("component", "adopt"),
	}
}

// AdoptByID adopts the preset deck with id.
func (a *Adopter) AdoptByID(ctx context.Context, id int) AdoptResult {
	p, err := a.catalog.GetDeck(ctx, id)
	if err != nil {
		return failure(err)
	}
	if p == nil {
		return failure(fmt.Errorf("preset %d: %w", id, ErrPresetNotFound))
	}
	return a.Adopt(ctx, *p)
}

// Adopt imports the preset's missing cards into the user pool and creates a
// user deck with the preset's composition. The two writes are not
// transactional: a failure after the card write leaves the imported cards.
func (a *Adopter) Adopt(ctx context.Context, p deck.PresetDeck) AdoptResult {
	d, err := a.adopt(ctx, p)
	if err != nil {
		a.log.WarnContext(ctx, "adoption failed",
			slog.Int("preset_id", p.ID),
			slog.String("error", err.Error()),
		)
		return failure(err)
	}
	a.log.InfoContext(ctx, "preset adopted",
		slog.Int("preset_id", p.ID),
		slog.Int("deck_id", d.ID),
	)
	return AdoptResult{Success: true, Deck: d}
}

func (a *Adopter) adopt(ctx context.Context, p deck.PresetDeck) (*deck.UserDeck, error) {
	if err := a.latency.Wait(ctx, latency.Write); err != nil {
		return nil, err
	}

	decks, err := a.decks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load decks: %w", err)
	}
	if len(decks) >= a.maxDecks {
		return nil, ErrDeckLimit
	}
	id := deck.FirstFreeID(decks)

	var owned, system []cards.Card
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = a.cards.List(gctx)
		if err != nil {
			return fmt.Errorf("load cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		system, err = a.catalog.ListSystemCards(gctx)
		if err != nil {
			return fmt.Errorf("load system cards: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	imported := missingCards(p.CardIDs, owned, system)
	if len(imported) > 0 {
		if err := a.cards.Collection().Write(ctx, append(owned, imported...)); err != nil {
			return nil, fmt.Errorf("import cards: %w", err)
		}
	}

	ids := make([]int, len(p.CardIDs))
	copy(ids, p.CardIDs)
	d := deck.UserDeck{
		Base: deck.Base{
			ID:          id,
			Name:        p.Name,
			Description: p.Description,
		},
		CardIDs: ids,
		Kind:    deck.KindUser,
	}
	if err := a.decks.Collection().Write(ctx, append(decks, d)); err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}
	return &d, nil
}

// missingCards returns the system cards for every distinct id in ids that the
// user does not own yet, in order of first appearance. Ids unknown to the
// system pool are skipped.
func missingCards(ids []int, owned, system []cards.Card) []cards.Card {
	have := make(map[int]struct{}, len(owned))
	for _, c := range owned {
		have[c.ID] = struct{}{}
	}
	bySystemID := make(map[int]cards.Card, len(system))
	for _, c := range system {
		bySystemID[c.ID] = c
	}

	var out []cards.Card
	for _, id := range ids {
		if _, ok := have[id]; ok {
			continue
		}
		have[id] = struct{}{}
		if c, ok := bySystemID[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out
}

func failure(err error) AdoptResult {
	return AdoptResult{Error: err.Error()}
}
