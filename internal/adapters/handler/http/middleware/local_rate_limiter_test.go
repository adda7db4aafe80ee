package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLocalRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewLocalRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Burst up to the limit then block", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			w := getFrom(router, "/ping", "10.1.1.1")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		}

		w := getFrom(router, "/ping", "10.1.1.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "20", w.Header().Get("Retry-After"))
	})

	t.Run("Other clients have their own bucket", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, getFrom(router, "/ping", "10.1.1.2").Code)
	})

	t.Run("Tokens refill over time", func(t *testing.T) {
		now = now.Add(20 * time.Second)
		assert.Equal(t, http.StatusOK, getFrom(router, "/ping", "10.1.1.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, getFrom(router, "/ping", "10.1.1.1").Code)
	})

	t.Run("Idle clients are pruned", func(t *testing.T) {
		now = now.Add(5 * time.Minute)
		getFrom(router, "/ping", "10.1.1.3")

		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.NotContains(t, limiter.clients, "10.1.1.1")
		assert.Contains(t, limiter.clients, "10.1.1.3")
	})
}
