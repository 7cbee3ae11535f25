package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (c *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	if c.hits == nil {
		c.hits = map[string]int64{}
	}
	c.hits[key]++
	return c.hits[key], nil
}

type decisions struct {
	allowed, blocked int
}

func (d *decisions) RecordRateLimit(_ string, blocked bool) {
	if blocked {
		d.blocked++
		return
	}
	d.allowed++
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func send(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	rec := &decisions{}
	h := RateLimit(&memoryCounter{}, 2, time.Minute, rec)(okHandler())

	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:2222").Code)

	w := send(h, "10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send(h, "10.0.0.2:1111").Code, "other clients keep their own window")
	assert.Equal(t, decisions{allowed: 3, blocked: 1}, *rec)
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(&memoryCounter{err: errors.New("connection refused")}, 1, time.Minute, nil)(okHandler())

	for i := 0; i < 3; i++ {
		w := send(h, "10.0.0.1:1111")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "redis-error", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(nil, 1, time.Minute, nil)(okHandler())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1111").Code)
	}
}
