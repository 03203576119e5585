// Package shortenurlhandlers содержит HTTP-хендлеры для операций с короткими URL.
package shortenurlhandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/config"
	"github.com/aseptimu/keyed-store/internal/app/service"
	"github.com/aseptimu/keyed-store/internal/app/utils"
)

const notFoundDetail = "Short URL not found"

type ShortenRequest struct {
	URL string `json:"url" binding:"required"`
}

type ShortenResponse struct {
	ShortID     string `json:"short_id"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

type ShortLinkHandler struct {
	cfg     *config.ConfigType
	service service.URLShortener
	logger  *zap.SugaredLogger
}

func NewShortLinkHandler(cfg *config.ConfigType, service service.URLShortener, logger *zap.SugaredLogger) *ShortLinkHandler {
	return &ShortLinkHandler{cfg: cfg, service: service, logger: logger}
}

// Shorten обрабатывает POST /shorten. Повторное сокращение того же URL
// возвращает тот же short_id.
func (h *ShortLinkHandler) Shorten(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	link, err := h.service.Shorten(c.Request.Context(), req.URL)
	if errors.Is(err, service.ErrInvalidURL) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to shorten URL", "url", req.URL, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusOK, ShortenResponse{
		ShortID:     link.ShortID,
		ShortURL:    h.cfg.BaseAddress + "/" + link.ShortID,
		OriginalURL: link.OriginalURL,
	})
}

// Redirect перенаправляет клиента на оригинальный URL (GET /:short_id).
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	link, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, link.OriginalURL)
}

// Stats обрабатывает GET /stats/:short_id и возвращает сохранённую запись.
func (h *ShortLinkHandler) Stats(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	link, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *ShortLinkHandler) lookup(c *gin.Context) (service.ShortLink, bool) {
	shortID := c.Param("short_id")
	link, err := h.service.Lookup(c.Request.Context(), shortID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": notFoundDetail})
		return link, false
	case err != nil:
		h.logger.Errorw("Failed to look up short link", "short_id", shortID, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return link, false
	}
	return link, true
}
