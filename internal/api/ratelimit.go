package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate-limit budgets: 20 auth requests and 100 API requests per source IP
// per 15 minutes.
const (
	rateLimitWindow = 15 * time.Minute
	authRateBurst   = 20
	apiRateBurst    = 100
)

// IPRateLimiter hands out one token-bucket limiter per client IP. The
// bucket refills its full burst over the window.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter creates a limiter registry allowing burst requests per
// window for each IP.
func NewIPRateLimiter(burst int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(burst) / window.Seconds()),
		burst:    burst,
	}
}

// get returns the limiter for an IP, creating it on first sight.
func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// refund returns one token to an IP's bucket. AllowN with a negative
// count credits the bucket; Reservation.Cancel cannot be used here
// because it only restores tokens before the reservation's timeToAct,
// which for an immediate reservation has already passed by the time
// the handler returns.
func (l *IPRateLimiter) refund(ip string) {
	l.get(ip).AllowN(time.Now(), -1)
}

// RateLimitMiddleware rejects requests once an IP's budget is exhausted.
// With skipSuccessful set, requests that complete below 400 are refunded,
// so only failures count against the budget (login guessing, repeated
// registration attempts).
func RateLimitMiddleware(limiter *IPRateLimiter, skipSuccessful bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.get(ip).Allow() {
			abortWithError(c, http.StatusTooManyRequests,
				"Too many requests from this IP, please try again later")
			return
		}

		c.Next()

		if skipSuccessful && c.Writer.Status() < http.StatusBadRequest {
			limiter.refund(ip)
		}
	}
}
