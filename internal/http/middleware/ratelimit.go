package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc maps a request to the name of its token bucket.
type KeyFunc func(*gin.Context) string

// KeyByClientIP gives each client address its own bucket.
func KeyByClientIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + c.ClientIP() }
}

// KeyShared puts every request in one bucket. Listing fetches use it so the
// listing site sees a single request budget regardless of caller.
func KeyShared(name string) KeyFunc {
	key := "shared:" + name
	return func(*gin.Context) string { return key }
}

const (
	bucketIdleTTL   = 10 * time.Minute
	sweepEveryCalls = 5000
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-process token bucket per key. Idle buckets are swept
// every few thousand lookups.
type RateLimiter struct {
	limit rate.Limit
	burst int
	keyOf KeyFunc

	mu      sync.Mutex
	buckets map[string]*bucket
	calls   int
	ttl     time.Duration
}

// NewRateLimiter refills rps tokens per second up to burst, which is at
// least 1.
func NewRateLimiter(rps float64, burst int, keyOf KeyFunc) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   max(burst, 1),
		keyOf:   keyOf,
		buckets: make(map[string]*bucket),
		ttl:     bucketIdleTTL,
	}
}

func (rl *RateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Sweep before the lookup so a stale bucket for key is replaced too.
	if rl.calls++; rl.calls >= sweepEveryCalls {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.calls = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Handler rejects requests over budget with 429 and a Retry-After hint in
// whole seconds. Idempotent replays are never counted.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		now := time.Now()
		res := rl.limiterFor(rl.keyOf(c), now).ReserveN(now, 1)
		wait := time.Second
		if res.OK() {
			delay := res.DelayFrom(now)
			if delay == 0 {
				c.Next()
				return
			}
			res.CancelAt(now)
			wait = delay
		}

		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abort(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
	}
}

// IsRateBypass reports whether IdempotencyValidator exempted the request.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}
