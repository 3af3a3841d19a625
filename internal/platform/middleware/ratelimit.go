package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter applies a per-client-address token bucket to expensive
// endpoints (credential issuance involves an external token exchange and a
// signing call, so it is the natural place for this).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst per client address. Idle client entries are dropped lazily.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if cl, ok := rl.limiters[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}

	// Opportunistic cleanup keeps the map bounded without a background goroutine.
	if len(rl.limiters) > 10_000 {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > 10*time.Minute {
				delete(rl.limiters, k)
			}
		}
	}

	cl := &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), lastSeen: now}
	rl.limiters[key] = cl
	return cl.limiter
}

// Handler rejects requests exceeding the per-client rate with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetClientMetadata(r.Context()).IP
		if key == "" {
			key = clientIP(r.RemoteAddr)
		}
		if !rl.get(key).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate_limited","error_description":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
