package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listPresets(c *gin.Context) {
	out, err := h.presets.ListDecks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

func (h *Handler) getPreset(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	p, err := h.presets.GetDeck(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if p == nil {
		writeError(c, http.StatusNotFound, "preset not found")
		return
	}
	writeData(c, http.StatusOK, p)
}

func (h *Handler) listPresetCards(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	out, err := h.presets.ListCardsForDeck(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

func (h *Handler) listSystemCards(c *gin.Context) {
	out, err := h.presets.ListSystemCards(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

// adoptPreset handles POST /presets/:id/adopt. Failures are reported in the
// body as {success: false, error}.
func (h *Handler) adoptPreset(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	res := h.adopter.AdoptByID(c.Request.Context(), id)
	status := http.StatusCreated
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, res)
}
