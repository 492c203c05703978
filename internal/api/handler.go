package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/account"
	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/dialog"
	"github.com/youruser/cardbinder/internal/preset"
)

type cardService interface {
	List(ctx context.Context) ([]cards.Card, error)
	ListForDeck(ctx context.Context, deckID int) ([]cards.Card, error)
	Add(ctx context.Context, draft cards.Card) (cards.Card, error)
	Update(ctx context.Context, p cards.Patch) (cards.Card, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, opt cards.FilterOptions) ([]cards.Card, error)
}

type deckService interface {
	List(ctx context.Context) ([]deck.UserDeck, error)
	Get(ctx context.Context, id int) (*deck.UserDeck, error)
	Create(ctx context.Context, input deck.CreateInput) (deck.UserDeck, error)
	Delete(ctx context.Context, id int) (bool, error)
	UpdateInfo(ctx context.Context, id int, patch deck.InfoPatch) (*deck.UserDeck, error)
	AddCard(ctx context.Context, deckID, cardID int) (*deck.UserDeck, error)
	RemoveCard(ctx context.Context, deckID, cardID, index int) (deck.RemoveResult, error)
}

type presetService interface {
	ListDecks(ctx context.Context) ([]deck.PresetDeck, error)
	GetDeck(ctx context.Context, id int) (*deck.PresetDeck, error)
	ListSystemCards(ctx context.Context) ([]cards.Card, error)
	ListCardsForDeck(ctx context.Context, presetID int) ([]cards.Card, error)
}

type adoptService interface {
	AdoptByID(ctx context.Context, id int) preset.AdoptResult
}

type accountService interface {
	Current() *account.User
	Require() (account.User, error)
	Set(ctx context.Context, u account.User) (account.User, error)
	Clear(ctx context.Context) error
}

type dialogService interface {
	OpenView(card cards.Card, list []cards.Card)
	OpenEdit(card cards.Card, list []cards.Card)
	OpenCreate(d dialog.Draft)
	Close()
	Next()
	Prev()
	GoTo(i int)
	PatchCurrent(p cards.Patch)
	ReplaceCurrentAfterSave(updated cards.Card)
	FinishEdit(saved cards.Card)
	HasPrev() bool
	HasNext() bool
	CanNavigate() bool
	Title() string
	State() dialog.State
}

// Deps are the services exposed over HTTP.
type Deps struct {
	Cards   cardService
	Decks   deckService
	Presets presetService
	Adopter adoptService
	Account accountService
	Dialog  dialogService
}

// Handler serves the REST endpoints.
type Handler struct {
	cards   cardService
	decks   deckService
	presets presetService
	adopter adoptService
	account accountService
	dialog  dialogService
	log     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cards:   deps.Cards,
		decks:   deps.Decks,
		presets: deps.Presets,
		adopter: deps.Adopter,
		account: deps.Account,
		dialog:  deps.Dialog,
		log:     logger.With("handler", "api"),
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
