package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareLogger(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), MiddlewareLogger(logger))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entries := obs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "Request", entries[0].Message)
	assert.Equal(t, "/test", fields["uri"])
	assert.Equal(t, "GET", fields["method"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), fields["request_id"])
}

func TestMiddlewareLogger_NotFound(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(MiddlewareLogger(zap.New(core).Sugar()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, obs.All(), 1)
	assert.EqualValues(t, http.StatusNotFound, obs.All()[0].ContextMap()["status"])
}
