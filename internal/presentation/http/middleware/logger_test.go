package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggerTestRouter(ctxID *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*ctxID = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestLoggerMiddlewareEchoesCallerRequestID(t *testing.T) {
	var ctxID string
	r := newLoggerTestRouter(&ctxID)

	// caller-supplied IDs can be shorter than a minted UUID; logging must
	// not slice past their length
	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc", ctxID)
}

func TestLoggerMiddlewareMintsRequestID(t *testing.T) {
	var ctxID string
	r := newLoggerTestRouter(&ctxID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	echoed := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, echoed)
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
	assert.Equal(t, echoed, ctxID)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789abcdef"))
	assert.Equal(t, "", shortID(""))
}
