package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/account"
)

func (h *Handler) getAccount(c *gin.Context) {
	writeData(c, http.StatusOK, h.account.Current())
}

func (h *Handler) setAccount(c *gin.Context) {
	var u account.User
	if err := c.ShouldBindJSON(&u); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.account.Set(c.Request.Context(), u)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeData(c, http.StatusOK, out)
}

func (h *Handler) clearAccount(c *gin.Context) {
	if err := h.account.Clear(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
