package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter is an in-process token bucket per client IP, used when
// Redis is not configured. Limits are per instance.
type LocalRateLimiter struct {
	limit   int
	window  time.Duration
	every   rate.Limit
	now     func() time.Time
	clients map[string]*visitor

	lastPrune time.Time
	mu        sync.Mutex
}

func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{
		limit:   limit,
		window:  window,
		every:   rate.Every(window / time.Duration(limit)),
		now:     time.Now,
		clients: make(map[string]*visitor),
	}
}

func (l *LocalRateLimiter) reserve(ip string) (bool, float64, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > l.window {
		for key, v := range l.clients {
			if now.Sub(v.lastSeen) > l.window {
				delete(l.clients, key)
			}
		}
		l.lastPrune = now
	}

	v, ok := l.clients[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.limit)}
		l.clients[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, v.limiter.TokensAt(now), 0
}

func (l *LocalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, tokens, wait := l.reserve(c.ClientIP())

		setRateLimitHeaders(c, l.limit, int64(max(0, tokens)), l.now().Add(wait))

		if !allowed {
			abortTooManyRequests(c, wait)
			return
		}
		c.Next()
	}
}
