package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aseptimu/keyed-store/internal/app/utils"
)

const (
	// RequestIDHeader - заголовок с идентификатором запроса.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey - ключ идентификатора запроса в gin.Context.
	RequestIDKey = utils.RequestIDKey
)

// RequestID сохраняет корректный входящий X-Request-ID или генерирует новый
// UUID и возвращает его в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
