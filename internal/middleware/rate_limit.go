package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/pkg/ratelimit"
)

// Rate classes. Each route is tagged with exactly one.
const (
	RateClassDefault  = "default"
	RateClassGrades   = "grades"
	RateClassHasLogin = "has_login"
)

// RateLimitMiddleware throttles requests per rate class, keyed by client
// address. Unauthenticated callers are throttled too, so the key is the
// network peer rather than the session user.
type RateLimitMiddleware struct {
	limiters map[string]*ratelimit.Limiter
}

// NewRateLimitMiddleware builds one limiter per rate class from the
// configured rate strings.
func NewRateLimitMiddleware(rates map[string]string) (*RateLimitMiddleware, error) {
	limiters := make(map[string]*ratelimit.Limiter, len(rates))
	for class, rateString := range rates {
		limiter, err := ratelimit.NewLimiterFromString(rateString)
		if err != nil {
			return nil, fmt.Errorf("rate class %s: %w", class, err)
		}
		limiters[class] = limiter
	}
	return &RateLimitMiddleware{limiters: limiters}, nil
}

// Limit returns the middleware enforcing the named rate class. The 429
// body is identical for every class.
func (m *RateLimitMiddleware) Limit(class string) gin.HandlerFunc {
	limiter, ok := m.limiters[class]
	if !ok {
		panic(fmt.Sprintf("unknown rate class %q", class))
	}

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.MessageResponse{
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// Stop halts all limiter cleanup goroutines.
func (m *RateLimitMiddleware) Stop() {
	for _, limiter := range m.limiters {
		limiter.Stop()
	}
}
