package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"webhook-receiver/internal/middleware"
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/metrics"
	"webhook-receiver/pkg/response"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func newEngine(mw middleware.Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID(), mw.Recovery())
	r.POST("/webhook", handlers...)
	return r
}

func nopLogger() log.Logger {
	return log.NewWithCore(zapcore.NewNopCore())
}

func TestRawBody(t *testing.T) {
	mw := middleware.New(nopLogger(), nil, nil, 16)

	var seen []byte
	r := newEngine(mw, mw.RawBody(), func(c *gin.Context) {
		body, ok := middleware.GetRawBody(c)
		require.True(t, ok)
		seen = body
		c.Status(http.StatusOK)
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"a": 1}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"a": 1}`, string(seen))
	})

	t.Run("too large", func(t *testing.T) {
		seen = nil
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(strings.Repeat("x", 17))))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Nil(t, seen, "handler must not run")
	})

	t.Run("read failure", func(t *testing.T) {
		seen = nil
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", iotest.ErrReader(errors.New("read timeout"))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, seen, "handler must not run")

		var resp response.Resp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadRequest, resp.ErrorCode)
		assert.NotContains(t, resp.Message, "timeout")
	})
}

func TestGetRawBodyUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := middleware.GetRawBody(c)
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	mw := middleware.New(nopLogger(), nil, nil, 0)

	var fromCtx, fromGin string
	r := newEngine(mw, func(c *gin.Context) {
		fromCtx = log.RequestIDFromContext(c.Request.Context())
		fromGin = middleware.GetRequestID(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "abc-123", fromCtx)
	assert.Equal(t, "abc-123", fromGin)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))
	generated := w.Header().Get(middleware.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, fromCtx)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	mw := middleware.New(log.NewWithCore(core), nil, nil, 0)

	r := newEngine(mw, func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "boom")

	// The engine keeps serving after a panic.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	t.Run("rejects", func(t *testing.T) {
		lim := &stubLimiter{allowed: false}
		mw := middleware.New(nopLogger(), m, lim, 0)
		called := false
		r := newEngine(mw, mw.RateLimit(), func(c *gin.Context) { called = true })

		req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.False(t, called)
		assert.Equal(t, []string{"198.51.100.9"}, lim.keys)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitedTotal))
	})

	t.Run("fails open", func(t *testing.T) {
		lim := &stubLimiter{allowed: true, err: errors.New("redis down")}
		mw := middleware.New(nopLogger(), m, lim, 0)
		r := newEngine(mw, mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitErrorsTotal))
	})

	t.Run("nil limiter", func(t *testing.T) {
		mw := middleware.New(nopLogger(), nil, nil, 0)
		r := newEngine(mw, mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	mw := middleware.New(log.NewWithCore(core), m, nil, 0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.AccessLog())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/denied", func(c *gin.Context) { c.Status(http.StatusForbidden) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/denied", "/broken"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/denied", "403")))
}
