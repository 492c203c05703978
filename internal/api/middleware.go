package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID propagates or generates a request id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ctxutil.NewRequestID()
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger logs each request with method, path, status, duration and
// context identifiers.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		}
		if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
			attrs = append(attrs, slog.String("user_id", userID))
		}

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "http.request", attrs...)
	}
}

// RequireUser rejects requests while no user identity is stored.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.account.Require()
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), u.ID))
		c.Next()
	}
}
