package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })
	return r
}

func get(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTraceIDMiddleware(t *testing.T) {
	r := newEngine(TraceIDMiddleware())

	w := get(r, nil)
	_, err := uuid.Parse(w.Header().Get(TraceIDHeader))
	require.NoError(t, err)
	assert.Equal(t, w.Header().Get(TraceIDHeader), w.Body.String())

	incoming := uuid.NewString()
	w = get(r, http.Header{TraceIDHeader: {incoming}})
	assert.Equal(t, incoming, w.Header().Get(TraceIDHeader))

	w = get(r, http.Header{TraceIDHeader: {"<script>"}})
	assert.NotEqual(t, "<script>", w.Header().Get(TraceIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware("https://planner.example"))

	w := get(r, http.Header{"Origin": {"https://planner.example"}})
	assert.Equal(t, "https://planner.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://planner.example")
	pre := httptest.NewRecorder()
	r.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)

	open := newEngine(CORSMiddleware("*"))
	w = get(open, http.Header{"Origin": {"https://anything.example"}})
	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.0001, 2)
	r := newEngine(rl.Limit())

	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, nil).Code)
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	require.Len(t, rl.visitors, 1)

	now = now.Add(visitorIdleTTL + time.Minute)
	rl.getLimiter("10.0.0.2")
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
