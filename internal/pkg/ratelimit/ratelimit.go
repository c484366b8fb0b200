// Package ratelimit provides per-client token-bucket rate limiting.
//
// Limits are expressed as rate strings like "30/minute". Counters live in
// process memory only: in a multi-instance deployment each instance
// enforces its limit independently.
package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ParseRate parses a rate string of the form "count/unit", where unit is
// one of second, minute, hour, day.
func ParseRate(s string) (int, time.Duration, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rate string %q: want count/unit", s)
	}

	count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || count <= 0 {
		return 0, 0, fmt.Errorf("invalid rate count in %q", s)
	}

	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "second":
		window = time.Second
	case "minute":
		window = time.Minute
	case "hour":
		window = time.Hour
	case "day":
		window = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("invalid rate unit in %q", s)
	}

	return count, window, nil
}

// Limiter enforces one rate policy across many caller keys, one token
// bucket per key.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLimiter creates a limiter allowing count requests per window for each
// distinct key, and starts background cleanup of idle keys.
func NewLimiter(count int, window time.Duration) *Limiter {
	l := &Limiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(window / time.Duration(count)),
		burst:    count,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop(10 * time.Minute)
	return l
}

// NewLimiterFromString creates a limiter from a rate string like
// "10/minute".
func NewLimiterFromString(s string) (*Limiter, error) {
	count, window, err := ParseRate(s)
	if err != nil {
		return nil, err
	}
	return NewLimiter(count, window), nil
}

// Allow reports whether a request identified by key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	entry, exists := l.limiters[key]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[key] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Stop halts the cleanup goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Hour)
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than maxIdle.
func (l *Limiter) cleanup(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, entry := range l.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}
