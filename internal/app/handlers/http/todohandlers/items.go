// Package todohandlers содержит HTTP-хендлеры TODO-сервиса.
package todohandlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/service"
	"github.com/aseptimu/keyed-store/internal/app/utils"
)

const notFoundDetail = "Item not found"

type CreateItemRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UpdateItemRequest - частичное обновление: отсутствующее или null-поле
// не меняется.
type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type ItemHandler struct {
	service service.ItemManager
	logger  *zap.SugaredLogger
}

func NewItemHandler(service service.ItemManager, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{service: service, logger: logger}
}

// Create обрабатывает POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	item := service.NewItem{Title: *req.Title, Description: req.Description}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}

	created, err := h.service.CreateItem(c.Request.Context(), item)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// List обрабатывает GET /items. Задачи упорядочены по id.
func (h *ItemHandler) List(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get обрабатывает GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	id, ok := itemID(c)
	if !ok {
		return
	}
	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update обрабатывает PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	id, ok := itemID(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	patch := service.ItemPatch{Title: req.Title, Description: req.Description, Completed: req.Completed}
	if _, err := h.service.UpdateItem(c.Request.Context(), id, patch); err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Item updated", ID: id})
}

// Delete обрабатывает DELETE /items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted", ID: id})
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "item id must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *ItemHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": notFoundDetail})
		return
	}
	h.logger.Errorw("Item operation failed", "op", op, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}
