package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/cards"
)

// listCards handles GET /cards. Query parameters q, category and keyword
// narrow the result.
func (h *Handler) listCards(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindQuery(&opt); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.cards.Search(c.Request.Context(), opt)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

// searchCards handles POST /cards/search.
func (h *Handler) searchCards(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.cards.Search(c.Request.Context(), opt)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "data": out})
}

func (h *Handler) addCard(c *gin.Context) {
	var draft cards.Card
	if err := c.ShouldBindJSON(&draft); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := cards.ValidateDraft(draft); err != nil {
		h.handleError(c, err)
		return
	}
	out, err := h.cards.Add(c.Request.Context(), draft)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusCreated, out)
}

func (h *Handler) updateCard(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var p cards.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = id
	out, err := h.cards.Update(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

func (h *Handler) deleteCard(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.cards.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
