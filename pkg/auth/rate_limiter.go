package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter limits how often a keyed caller may run an analysis request
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// WindowLimiter is a sliding-window limiter. Analysis requests are expensive
// (an O(n²) scoring pass per call), so the window counts whole requests
// rather than metering tokens.
type WindowLimiter struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	limit     int
	span      time.Duration
	lastSweep time.Time

	now func() time.Time
}

// NewWindowLimiter creates a limiter allowing limit requests per span
func NewWindowLimiter(limit int, span time.Duration) *WindowLimiter {
	return &WindowLimiter{
		hits:      make(map[string][]time.Time),
		limit:     limit,
		span:      span,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow records a request for key and reports whether it fits the window
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.span)
	l.sweepLocked(now, cutoff)

	recent := l.hits[key]
	kept := recent[:0]
	for _, hit := range recent {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false, nil
	}

	l.hits[key] = append(kept, now)
	return true, nil
}

// Reset forgets all recorded requests for key
func (l *WindowLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.hits, key)
	return nil
}

// sweepLocked drops keys whose every hit fell out of the window. Runs at
// most once per span so steady traffic does not pay for it on every call.
func (l *WindowLimiter) sweepLocked(now, cutoff time.Time) {
	if now.Sub(l.lastSweep) < l.span {
		return
	}
	l.lastSweep = now

	for key, recent := range l.hits {
		live := false
		for _, hit := range recent {
			if hit.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.hits, key)
		}
	}
}

// IPRateLimiter throttles unauthenticated callers by client address
type IPRateLimiter struct {
	limiter RateLimiter
}

// NewIPRateLimiter allows requestsPerMinute analysis requests per address
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	return &IPRateLimiter{
		limiter: NewWindowLimiter(requestsPerMinute, time.Minute),
	}
}

// Allow reports whether a request from ip fits its window
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	return l.limiter.Allow(ctx, "addr:"+ip)
}

// UserRateLimiter throttles authenticated callers by user ID
type UserRateLimiter struct {
	limiter RateLimiter
}

// NewUserRateLimiter allows requestsPerMinute analysis requests per user
func NewUserRateLimiter(requestsPerMinute int) *UserRateLimiter {
	return &UserRateLimiter{
		limiter: NewWindowLimiter(requestsPerMinute, time.Minute),
	}
}

// Allow reports whether a request from userID fits its window
func (l *UserRateLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	return l.limiter.Allow(ctx, "caller:"+userID)
}
