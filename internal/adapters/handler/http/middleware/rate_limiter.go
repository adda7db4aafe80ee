package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimiterMiddleware enforces a fixed window per client IP in Redis.
// Redis errors let the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, log logrus.FieldLogger) gin.HandlerFunc {
	log = log.WithField("component", "rate_limiter")

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("redis error, rate limiter skipped")
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.WithError(err).Warn("redis expire error, deleting key")
				rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}

		setRateLimitHeaders(c, limit, max(0, int64(limit)-count), time.Now().Add(ttl))

		if count > int64(limit) {
			abortTooManyRequests(c, ttl)
			return
		}

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, limit int, remaining int64, reset time.Time) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}

func abortTooManyRequests(c *gin.Context, retryIn time.Duration) {
	seconds := int(retryIn.Round(time.Second).Seconds())
	c.Header("Retry-After", strconv.Itoa(max(1, seconds)))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":      "too many requests",
		"retry_in_s": seconds,
	})
}
