package api

import (
	"image"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
	imagepkg "github.com/youruser/cardbinder/internal/image"
)

// deckQR handles GET /decks/:id/qr?size=N and encodes the deck's text export.
func (h *Handler) deckQR(c *gin.Context) {
	d, pool, ok := h.loadDeckWithCards(c)
	if !ok {
		return
	}
	size := imagepkg.DefaultQRSize
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(deck.ExportText(*d, cards.Names(pool)), size)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// deckShareImage handles GET /decks/:id/share.png. A cover that cannot be
// loaded is left blank.
func (h *Handler) deckShareImage(c *gin.Context) {
	d, pool, ok := h.loadDeckWithCards(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var cover image.Image
	if d.CoverImage != "" {
		img, err := imagepkg.LoadImage(ctx, d.CoverImage)
		if err != nil {
			h.log.WarnContext(ctx, "cover load failed",
				slog.Int("deck_id", d.ID),
				slog.String("error", err.Error()),
			)
		} else {
			cover = img
		}
	}

	qr, err := imagepkg.GenerateQRImage(deck.ExportText(*d, cards.Names(pool)), imagepkg.DefaultQRSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resolved := cards.Resolve(d.CardIDs, pool)
	categories := make([]cards.Category, 0, len(resolved))
	for _, card := range resolved {
		categories = append(categories, card.Category)
	}

	b, err := imagepkg.EncodePNG(imagepkg.ComposeShareImage(cover, categories, qr))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
