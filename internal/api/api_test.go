package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardbinder/internal/account"
	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/dialog"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/preset"
	"github.com/youruser/cardbinder/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine  *gin.Engine
	account *account.Store
	decks   *deck.Repository
	cards   *cards.Repository
}

func newTestServer(t *testing.T, signedIn bool) testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.New(storage.NewMemory(), "test", log)
	none := latency.None()

	decks := deck.NewRepository(store, deck.Options{Latency: none, Logger: log})
	userCards := cards.NewRepository(store, decks, cards.Options{Latency: none, Logger: log})
	presets := preset.NewRepository(store, preset.Options{Latency: none, Logger: log})
	adopter := preset.NewAdopter(decks, userCards, presets, preset.AdoptOptions{Latency: none, Logger: log})
	acct := account.NewStore(store, log)
	t.Cleanup(func() {
		decks.WaitBackground()
		userCards.WaitBackground()
		presets.WaitBackground()
	})

	if signedIn {
		_, err := acct.Set(context.Background(), account.User{ID: "u-1", Nickname: "tester"})
		require.NoError(t, err)
	}

	h := NewHandler(Deps{
		Cards:   userCards,
		Decks:   decks,
		Presets: presets,
		Adopter: adopter,
		Account: acct,
		Dialog:  dialog.New(),
	}, log)
	return testServer{engine: NewEngine(h, log), account: acct, decks: decks, cards: userCards}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	rec := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestIdentityGate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	rec := s.do(t, http.MethodGet, "/api/decks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"sign in required"}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/account", map[string]string{"nickname": "neo"})
	require.Equal(t, http.StatusOK, rec.Code)
	u := decode[account.User](t, rec)
	assert.NotEmpty(t, u.ID)

	rec = s.do(t, http.MethodGet, "/api/decks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/account", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/decks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCardsEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]cards.Card](t, rec), len(cards.DefaultCatalog()))

	rec = s.do(t, http.MethodPost, "/api/cards", cards.Card{ID: cards.DraftID, Name: "Spark", Keywords: []string{"fire"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[cards.Card](t, rec)
	assert.Equal(t, 8, added.ID)

	rec = s.do(t, http.MethodPost, "/api/cards", cards.Card{Name: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cards?q=spark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]cards.Card](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, added.ID, found[0].ID)

	rec = s.do(t, http.MethodPatch, "/api/cards/8", map[string]any{"description": "hot"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[cards.Card](t, rec)
	assert.Equal(t, "Spark", updated.Name)
	assert.Equal(t, "hot", updated.Description)

	rec = s.do(t, http.MethodPatch, "/api/cards/999", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/cards/abc", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/cards/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/decks/1/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range decode[[]cards.Card](t, rec) {
		assert.NotEqual(t, 1, c.ID)
	}
}

func TestDeckEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/decks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]deck.UserDeck](t, rec), len(deck.DefaultDecks()))

	rec = s.do(t, http.MethodPost, "/api/decks", deck.CreateInput{Name: "Tempo", Description: "fast"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[deck.UserDeck](t, rec)
	assert.Equal(t, 5, created.ID)

	rec = s.do(t, http.MethodPost, "/api/decks", deck.CreateInput{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/decks/5/cards", map[string]int{"cardId": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/decks/5/cards", map[string]int{"cardId": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2, 2}, decode[deck.UserDeck](t, rec).CardIDs)

	rec = s.do(t, http.MethodPost, "/api/decks/99/cards", map[string]int{"cardId": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/decks/5/cards/3?index=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var res deck.RemoveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, deck.ReasonCardNotInDeck, res.Reason)

	rec = s.do(t, http.MethodDelete, "/api/decks/5/cards/2?index=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, []int{2}, res.Deck.CardIDs)

	name := "Renamed"
	rec = s.do(t, http.MethodPatch, "/api/decks/5", deck.InfoPatch{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decode[deck.UserDeck](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/decks/5/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Renamed\n1x2 Card B", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/decks/5/export?format=yaml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "name: Renamed"))

	rec = s.do(t, http.MethodGet, "/api/decks/5/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/decks/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/decks/5", nil)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/decks/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/decks/1/qr?size=128", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	rec = s.do(t, http.MethodGet, "/api/decks/1/share.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())

	rec = s.do(t, http.MethodGet, "/api/decks/42/qr", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareImage_LocalCoverRenderedBlank(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	path := filepath.Join(t.TempDir(), "secret.png")
	require.NoError(t, imaging.Save(imaging.New(40, 40, color.NRGBA{R: 255, A: 255}), path))

	for _, cover := range []string{path, "/etc/passwd"} {
		rec := s.do(t, http.MethodGet, "/api/decks", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = s.do(t, http.MethodPatch, "/api/decks/1", map[string]any{"coverImage": cover})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodGet, "/api/decks/1/share.png", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)

		// inside the cover area
		r, g, b, _ := img.At(60, 100).RGBA()
		assert.Equal(t, []uint32{0xcc, 0xcc, 0xcc}, []uint32{r >> 8, g >> 8, b >> 8}, cover)
	}
}

func TestPresetEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]deck.PresetDeck](t, rec), len(preset.DefaultDecks()))

	rec = s.do(t, http.MethodGet, "/api/presets/1/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]cards.Card](t, rec), 3)

	rec = s.do(t, http.MethodGet, "/api/system-cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]cards.Card](t, rec), len(cards.SystemCatalog()))

	rec = s.do(t, http.MethodGet, "/api/presets/77", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/presets/1/adopt", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res preset.AdoptResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 5, res.Deck.ID)
	assert.Equal(t, []int{1001, 1002, 1003}, res.Deck.CardIDs)

	rec = s.do(t, http.MethodPost, "/api/presets/77/adopt", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

type dialogResponse struct {
	Visible     bool         `json:"visible"`
	Mode        dialog.Mode  `json:"mode"`
	Current     *cards.Card  `json:"currentCard"`
	List        []cards.Card `json:"list"`
	Index       int          `json:"index"`
	Title       string       `json:"title"`
	HasPrev     bool         `json:"hasPrev"`
	HasNext     bool         `json:"hasNext"`
	CanNavigate bool         `json:"canNavigate"`
}

func TestDialogFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodPost, "/api/dialog/open", map[string]any{"mode": "view", "cardId": 2, "deckId": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[dialogResponse](t, rec)
	assert.True(t, st.Visible)
	assert.Equal(t, 1, st.Index)
	assert.Len(t, st.List, 3)
	assert.True(t, st.CanNavigate)

	rec = s.do(t, http.MethodPost, "/api/dialog/next", nil)
	st = decode[dialogResponse](t, rec)
	assert.Equal(t, 3, st.Current.ID)
	assert.False(t, st.HasNext)

	rec = s.do(t, http.MethodPatch, "/api/dialog/current", map[string]any{"description": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decode[dialogResponse](t, rec)
	assert.Equal(t, "edited", st.Current.Description)
	assert.NotEqual(t, "edited", st.List[2].Description)

	rec = s.do(t, http.MethodPost, "/api/dialog/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", decode[cards.Card](t, rec).Description)

	rec = s.do(t, http.MethodGet, "/api/dialog", nil)
	st = decode[dialogResponse](t, rec)
	assert.Equal(t, "edited", st.List[2].Description)

	rec = s.do(t, http.MethodPost, "/api/dialog/open", map[string]any{"mode": "edit", "cardId": 3, "deckId": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/dialog/current", map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/dialog/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decode[cards.Card](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/dialog", nil)
	st = decode[dialogResponse](t, rec)
	assert.Equal(t, dialog.ModeView, st.Mode)
	assert.Equal(t, "Renamed", st.Current.Name)
	assert.Equal(t, "Renamed", st.List[2].Name)
	assert.Equal(t, "edited", st.List[2].Description)

	rec = s.do(t, http.MethodPost, "/api/dialog/open", map[string]any{"mode": "create", "name": "Fresh"})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decode[dialogResponse](t, rec)
	assert.Equal(t, cards.DraftID, st.Current.ID)
	assert.Equal(t, -1, st.Index)

	rec = s.do(t, http.MethodPost, "/api/dialog/save", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 8, decode[cards.Card](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/api/dialog", nil)
	assert.False(t, decode[dialogResponse](t, rec).Visible)

	rec = s.do(t, http.MethodPost, "/api/dialog/save", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/dialog/open", map[string]any{"mode": "edit", "cardId": 404})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
