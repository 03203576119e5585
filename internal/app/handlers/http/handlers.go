package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/config"
	"github.com/aseptimu/keyed-store/internal/app/handlers/http/dbhandlers"
	"github.com/aseptimu/keyed-store/internal/app/handlers/http/shortenurlhandlers"
	"github.com/aseptimu/keyed-store/internal/app/handlers/http/todohandlers"
	"github.com/aseptimu/keyed-store/internal/app/service"
)

type Handlers interface {
	RegisterRoutes(r *gin.Engine)
}

type shortenerHandlers struct {
	cfg    *config.ConfigType
	urlSvc service.URLShortener
	pinger dbhandlers.Pinger
	logger *zap.SugaredLogger
}

// NewShortener возвращает маршруты сервиса коротких ссылок.
func NewShortener(
	cfg *config.ConfigType,
	urlSvc service.URLShortener,
	pinger dbhandlers.Pinger,
	logger *zap.SugaredLogger,
) Handlers {
	return &shortenerHandlers{cfg: cfg, urlSvc: urlSvc, pinger: pinger, logger: logger}
}

func (h *shortenerHandlers) RegisterRoutes(r *gin.Engine) {
	links := shortenurlhandlers.NewShortLinkHandler(h.cfg, h.urlSvc, h.logger)

	r.GET("/ping", dbhandlers.NewPingHandler(h.pinger, h.logger).Ping)
	r.POST("/shorten", links.Shorten)
	r.GET("/stats/:short_id", links.Stats)
	r.GET("/:short_id", links.Redirect)
}

type todoHandlers struct {
	itemSvc service.ItemManager
	pinger  dbhandlers.Pinger
	logger  *zap.SugaredLogger
}

// NewTodo возвращает маршруты TODO-сервиса.
func NewTodo(itemSvc service.ItemManager, pinger dbhandlers.Pinger, logger *zap.SugaredLogger) Handlers {
	return &todoHandlers{itemSvc: itemSvc, pinger: pinger, logger: logger}
}

func (h *todoHandlers) RegisterRoutes(r *gin.Engine) {
	items := todohandlers.NewItemHandler(h.itemSvc, h.logger)

	r.GET("/ping", dbhandlers.NewPingHandler(h.pinger, h.logger).Ping)
	r.POST("/items", items.Create)
	r.GET("/items", items.List)
	r.GET("/items/:id", items.Get)
	r.PUT("/items/:id", items.Update)
	r.DELETE("/items/:id", items.Delete)
}
