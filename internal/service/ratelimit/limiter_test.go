package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func fixedClock(l *Limiter, start time.Time) func(time.Duration) {
	now := start
	l.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestLimiter_BurstThenRefill(t *testing.T) {
	l := New(2, 1)
	advance := fixedClock(l, time.Unix(1000, 0))

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")

	advance(500 * time.Millisecond)
	assert.False(t, l.Allow("a"))
	advance(500 * time.Millisecond)
	assert.True(t, l.Allow("a"))

	advance(time.Hour)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "refill is capped at capacity")
}

func TestLimiter_Sweep(t *testing.T) {
	l := New(1, 1)
	advance := fixedClock(l, time.Unix(1000, 0))
	l.Allow("old")
	advance(time.Minute)
	l.Allow("new")

	assert.Equal(t, 1, l.Sweep(30*time.Second))
	assert.Len(t, l.m, 1)
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	l := New(1, 0.001)
	fixedClock(l, time.Unix(1000, 0))
	e.Use(Middleware(l))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestMiddleware_ZeroCapacityDisables(t *testing.T) {
	e := echo.New()
	e.Use(Middleware(New(0, 0)))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
