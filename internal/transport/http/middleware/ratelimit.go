package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "go-gin-blog/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTooMany, "too many requests"))
	}
}

// RateLimitPerIP 每 IP 限速；超过 ipIdleTTL 未出现的 IP 会被回收
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	return newIPLimiter(rps, burst, ipIdleTTL, time.Now).handle
}

const ipIdleTTL = 10 * time.Minute

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type ipLimiter struct {
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*ipBucket
	lastSweep time.Time
}

func newIPLimiter(rps rate.Limit, burst int, idle time.Duration, now func() time.Time) *ipLimiter {
	return &ipLimiter{rps: rps, burst: burst, idle: idle, now: now, buckets: make(map[string]*ipBucket), lastSweep: now()}
}

func (l *ipLimiter) allow(ip string) bool {
	now := l.now()
	l.mu.Lock()
	// sweep at most once per idle window, on the request path
	if now.Sub(l.lastSweep) >= l.idle {
		for k, b := range l.buckets {
			if now.Sub(b.seen) >= l.idle {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	l.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *ipLimiter) handle(c *gin.Context) {
	if l.allow(c.ClientIP()) {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTooMany, "too many requests"))
}
