package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	resp "basketball-manager/internal/transport/http/response"
)

// RateLimit is one token bucket shared by every client.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !lim.Allow() {
			Abort(c, resp.CodeTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}

// ipBuckets drops limiters idle for longer than idle once the map reaches sweepAt.
type ipBuckets struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	idle    time.Duration
	sweepAt int
	m       map[string]*ipBucket
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func (b *ipBuckets) allow(ip string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.m) >= b.sweepAt {
		for k, v := range b.m {
			if now.Sub(v.seen) > b.idle {
				delete(b.m, k)
			}
		}
	}
	e, ok := b.m[ip]
	if !ok {
		e = &ipBucket{lim: rate.NewLimiter(b.rps, b.burst)}
		b.m[ip] = e
	}
	e.seen = now
	return e.lim.AllowN(now, 1)
}

// RateLimitPerIP keeps one bucket per client IP.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	b := &ipBuckets{rps: rps, burst: burst, idle: 10 * time.Minute, sweepAt: 10000, m: map[string]*ipBucket{}}
	return func(c *gin.Context) {
		if !b.allow(c.ClientIP(), time.Now()) {
			Abort(c, resp.CodeTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}

// ConcurrencyLimit caps in-flight requests. Waiting requests give up when
// their context ends.
func ConcurrencyLimit(n int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(n)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			Abort(c, resp.CodeServerBusy, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}

// MaxBodyBytes fails reads past n bytes; binding then reports a bad request.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// Timeout bounds the request context; database calls observe it.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			Abort(c, resp.CodeTimeout, "timeout")
		}
	}
}
