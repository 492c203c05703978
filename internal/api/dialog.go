package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/dialog"
)

type dialogView struct {
	dialog.State
	Title       string `json:"title"`
	HasPrev     bool   `json:"hasPrev"`
	HasNext     bool   `json:"hasNext"`
	CanNavigate bool   `json:"canNavigate"`
}

type openDialogRequest struct {
	Mode dialog.Mode `json:"mode" binding:"required"`
	// CardID selects the card for view and edit.
	CardID int `json:"cardId"`
	// DeckID, when set, makes the deck's cards the navigation context
	// instead of the whole library.
	DeckID      int      `json:"deckId"`
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

type gotoRequest struct {
	Index int `json:"index"`
}

func (h *Handler) dialogState(c *gin.Context) {
	writeData(c, http.StatusOK, dialogView{
		State:       h.dialog.State(),
		Title:       h.dialog.Title(),
		HasPrev:     h.dialog.HasPrev(),
		HasNext:     h.dialog.HasNext(),
		CanNavigate: h.dialog.CanNavigate(),
	})
}

// openDialog handles POST /dialog/open.
func (h *Handler) openDialog(c *gin.Context) {
	var req openDialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Mode == dialog.ModeCreate {
		h.dialog.OpenCreate(dialog.Draft{Name: req.Name, Keywords: req.Keywords, Description: req.Description})
		h.dialogState(c)
		return
	}
	if req.Mode != dialog.ModeView && req.Mode != dialog.ModeEdit {
		writeError(c, http.StatusBadRequest, "unknown mode")
		return
	}

	ctx := c.Request.Context()
	var (
		list []cards.Card
		err  error
	)
	if req.DeckID > 0 {
		list, err = h.cards.ListForDeck(ctx, req.DeckID)
	} else {
		list, err = h.cards.List(ctx)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	idx := slices.IndexFunc(list, func(cd cards.Card) bool { return cd.ID == req.CardID })
	if idx < 0 {
		writeError(c, http.StatusNotFound, "card not found")
		return
	}

	if req.Mode == dialog.ModeView {
		h.dialog.OpenView(list[idx], list)
	} else {
		h.dialog.OpenEdit(list[idx], list)
	}
	h.dialogState(c)
}

func (h *Handler) dialogNext(c *gin.Context) {
	h.dialog.Next()
	h.dialogState(c)
}

func (h *Handler) dialogPrev(c *gin.Context) {
	h.dialog.Prev()
	h.dialogState(c)
}

func (h *Handler) dialogGoTo(c *gin.Context) {
	var req gotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dialog.GoTo(req.Index)
	h.dialogState(c)
}

func (h *Handler) dialogClose(c *gin.Context) {
	h.dialog.Close()
	h.dialogState(c)
}

func (h *Handler) patchDialogCard(c *gin.Context) {
	var p cards.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dialog.PatchCurrent(p)
	h.dialogState(c)
}

// saveDialogCard handles POST /dialog/save: the detached card is created or
// updated, then written back into the dialog. A created card closes the
// dialog; an edited card returns it to view mode.
func (h *Handler) saveDialogCard(c *gin.Context) {
	st := h.dialog.State()
	if !st.Visible || st.Current == nil {
		writeError(c, http.StatusConflict, "dialog is not open")
		return
	}
	ctx := c.Request.Context()

	if st.Mode == dialog.ModeCreate {
		if err := cards.ValidateDraft(*st.Current); err != nil {
			h.handleError(c, err)
			return
		}
		saved, err := h.cards.Add(ctx, *st.Current)
		if err != nil {
			h.handleError(c, err)
			return
		}
		h.dialog.Close()
		writeData(c, http.StatusCreated, saved)
		return
	}

	saved, err := h.cards.Update(ctx, cards.PatchFrom(*st.Current))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if st.Mode == dialog.ModeEdit {
		h.dialog.FinishEdit(saved)
	} else {
		h.dialog.ReplaceCurrentAfterSave(saved)
	}
	writeData(c, http.StatusOK, saved)
}
