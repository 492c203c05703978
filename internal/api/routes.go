package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with middleware and all routes.
func NewEngine(h *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)

		api.GET("/account", h.getAccount)
		api.PUT("/account", h.setAccount)
		api.DELETE("/account", h.clearAccount)
	}

	user := api.Group("", h.RequireUser())
	{
		user.GET("/cards", h.listCards)
		user.POST("/cards", h.addCard)
		user.POST("/cards/search", h.searchCards)
		user.PATCH("/cards/:id", h.updateCard)
		user.DELETE("/cards/:id", h.deleteCard)

		user.GET("/decks", h.listDecks)
		user.POST("/decks", h.createDeck)
		user.GET("/decks/:id", h.getDeck)
		user.PATCH("/decks/:id", h.updateDeck)
		user.DELETE("/decks/:id", h.deleteDeck)
		user.GET("/decks/:id/cards", h.listDeckCards)
		user.POST("/decks/:id/cards", h.addDeckCard)
		user.DELETE("/decks/:id/cards/:cardId", h.removeDeckCard)
		user.GET("/decks/:id/export", h.exportDeck)
		user.GET("/decks/:id/qr", h.deckQR)
		user.GET("/decks/:id/share.png", h.deckShareImage)

		user.GET("/presets", h.listPresets)
		user.GET("/presets/:id", h.getPreset)
		user.GET("/presets/:id/cards", h.listPresetCards)
		user.POST("/presets/:id/adopt", h.adoptPreset)

		user.GET("/system-cards", h.listSystemCards)

		user.GET("/dialog", h.dialogState)
		user.POST("/dialog/open", h.openDialog)
		user.POST("/dialog/next", h.dialogNext)
		user.POST("/dialog/prev", h.dialogPrev)
		user.POST("/dialog/goto", h.dialogGoTo)
		user.POST("/dialog/close", h.dialogClose)
		user.PATCH("/dialog/current", h.patchDialogCard)
		user.POST("/dialog/save", h.saveDialogCard)
	}
}
