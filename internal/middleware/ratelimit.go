package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// NewRateLimitHandler returns a middleware that applies a token bucket per
// client address: rps tokens per second with the given burst. Requests over
// the limit get 429 with a Retry-After header. rps <= 0 disables limiting.
//
// Wire it after chimiddleware.RealIP so proxied clients are told apart.
func NewRateLimitHandler(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		l := newClientLimiters(rate.Limit(rps), burst)
		// Seconds until the next token, rounded up.
		retryAfter := strconv.Itoa(int(math.Ceil(1 / rps)))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.get(clientKey(r)).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Limiters of clients idle for limiterIdleTTL are dropped, and at most
// maxTrackedClients are held at once.
const (
	limiterIdleTTL    = 10 * time.Minute
	maxTrackedClients = 10_000
)

// clientLimiters holds one limiter per client key.
type clientLimiters struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	max   int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

func newClientLimiters(limit rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		limit:   limit,
		burst:   burst,
		idle:    limiterIdleTTL,
		max:     maxTrackedClients,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if cl, ok := c.clients[key]; ok {
		cl.seen = now
		return cl.lim
	}
	if now.Sub(c.lastSweep) >= c.idle || len(c.clients) >= c.max {
		c.sweep(now)
	}
	if len(c.clients) >= c.max {
		c.evictOldest()
	}
	cl := &clientLimiter{lim: rate.NewLimiter(c.limit, c.burst), seen: now}
	c.clients[key] = cl
	return cl.lim
}

// sweep drops limiters idle for c.idle. Caller holds c.mu.
func (c *clientLimiters) sweep(now time.Time) {
	c.lastSweep = now
	for k, cl := range c.clients {
		if now.Sub(cl.seen) >= c.idle {
			delete(c.clients, k)
		}
	}
}

// evictOldest drops the least recently seen limiter. Caller holds c.mu.
func (c *clientLimiters) evictOldest() {
	var (
		oldest string
		seen   time.Time
		found  bool
	)
	for k, cl := range c.clients {
		if !found || cl.seen.Before(seen) {
			oldest, seen, found = k, cl.seen, true
		}
	}
	delete(c.clients, oldest)
}

// clientKey is the request's remote host without the port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
