package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedLimiterIsolatesKeys(t *testing.T) {
	l := NewKeyedLimiter(rate.Every(time.Hour), 1)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Same(t, l.Get("a"), l.Get("a"))
}

func TestKeyedLimiterPrunesIdleKeys(t *testing.T) {
	l := NewKeyedLimiter(rate.Limit(10), 1)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return start }

	for i := 0; i <= cleanupThreshold; i++ {
		l.Get(fmt.Sprintf("k-%d", i))
	}
	assert.Equal(t, cleanupThreshold+1, l.Len())

	l.now = func() time.Time { return start.Add(maxIdleAge + time.Minute) }
	l.Get("fresh")
	assert.Equal(t, 1, l.Len())
}

func TestMiddleware(t *testing.T) {
	l := NewKeyedLimiter(rate.Every(time.Hour), 2)
	h := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
