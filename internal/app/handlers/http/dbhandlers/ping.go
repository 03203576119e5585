// Package dbhandlers содержит проверку доступности хранилища.
package dbhandlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger сообщает, доступно ли хранилище.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingHandler struct {
	db     Pinger
	logger *zap.SugaredLogger
}

func NewPingHandler(db Pinger, logger *zap.SugaredLogger) *PingHandler {
	return &PingHandler{db: db, logger: logger}
}

// Ping обрабатывает GET /ping: 200, если хранилище отвечает, иначе 500.
func (h *PingHandler) Ping(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("Storage ping failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "storage unavailable"})
		return
	}
	c.Status(http.StatusOK)
}
