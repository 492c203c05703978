package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
)

type addCardRequest struct {
	CardID int `json:"cardId" binding:"required"`
}

func (h *Handler) listDecks(c *gin.Context) {
	out, err := h.decks.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

func (h *Handler) getDeck(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	d, err := h.decks.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if d == nil {
		writeError(c, http.StatusNotFound, "deck not found")
		return
	}
	writeData(c, http.StatusOK, d)
}

func (h *Handler) createDeck(c *gin.Context) {
	var in deck.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.decks.Create(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusCreated, d)
}

func (h *Handler) deleteDeck(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	removed, err := h.decks.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": removed})
}

func (h *Handler) updateDeck(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var p deck.InfoPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.decks.UpdateInfo(c.Request.Context(), id, p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if d == nil {
		writeError(c, http.StatusNotFound, "deck not found")
		return
	}
	writeData(c, http.StatusOK, d)
}

func (h *Handler) addDeckCard(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.decks.AddCard(c.Request.Context(), id, req.CardID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if d == nil {
		writeError(c, http.StatusNotFound, "deck not found")
		return
	}
	writeData(c, http.StatusOK, d)
}

// removeDeckCard handles DELETE /decks/:id/cards/:cardId?index=N. Rule
// violations come back as {data: null, success: false, error}.
func (h *Handler) removeDeckCard(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	cardID, ok := intParam(c, "cardId")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid index")
		return
	}

	res, err := h.decks.RemoveCard(c.Request.Context(), id, cardID, index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, res)
}

func (h *Handler) listDeckCards(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	out, err := h.cards.ListForDeck(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

// exportDeck handles GET /decks/:id/export?format=text|yaml.
func (h *Handler) exportDeck(c *gin.Context) {
	d, pool, ok := h.loadDeckWithCards(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", deck.FormatText)
	out, err := deck.Export(*d, cards.Names(pool), format)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == deck.FormatYAML {
		contentType = "application/yaml"
	}
	c.Data(http.StatusOK, contentType, []byte(out))
}

// loadDeckWithCards resolves the :id deck and the user's card pool,
// writing the error response itself.
func (h *Handler) loadDeckWithCards(c *gin.Context) (*deck.UserDeck, []cards.Card, bool) {
	id, ok := intParam(c, "id")
	if !ok {
		return nil, nil, false
	}
	ctx := c.Request.Context()
	d, err := h.decks.Get(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return nil, nil, false
	}
	if d == nil {
		writeError(c, http.StatusNotFound, "deck not found")
		return nil, nil, false
	}
	pool, err := h.cards.List(ctx)
	if err != nil {
		h.handleError(c, err)
		return nil, nil, false
	}
	return d, pool, true
}
