package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// RateLimiter is the politeness gate in front of every retailer fetch. It
// enforces two independent constraints: a global ceiling on simultaneously
// in-flight fetches, and a minimum spacing between successive fetch starts
// at the same retailer. The spacing is retailer-wide: two different queries
// hitting the same retailer still respect it, while unrelated retailers are
// never delayed by it.
type RateLimiter struct {
	global  *semaphore.Weighted
	spacing time.Duration

	mu      sync.Mutex
	spacers map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter allowing at most maxConcurrent in-flight
// fetches overall and one fetch start per spacing interval per retailer.
func NewRateLimiter(maxConcurrent int, spacing time.Duration) *RateLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	return &RateLimiter{
		global:  semaphore.NewWeighted(int64(maxConcurrent)),
		spacing: spacing,
		spacers: make(map[string]*rate.Limiter),
	}
}

// Acquire blocks until both the retailer's spacing and a global slot are
// available. It only fails when ctx is cancelled. Every successful Acquire
// must be paired with a Release.
//
// The spacing wait happens before the global slot is taken so a retailer
// sitting out its delay never occupies a slot another retailer could use.
func (l *RateLimiter) Acquire(ctx context.Context, retailer string) error {
	if err := l.spacer(retailer).Wait(ctx); err != nil {
		return err
	}
	return l.global.Acquire(ctx, 1)
}

// Release returns a global slot. Safe to call from any goroutine.
func (l *RateLimiter) Release() {
	l.global.Release(1)
}

// spacer returns the per-retailer spacing limiter, creating it on first use
func (l *RateLimiter) spacer(retailer string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.spacers[retailer]
	if !ok {
		if l.spacing <= 0 {
			lim = rate.NewLimiter(rate.Inf, 1)
		} else {
			lim = rate.NewLimiter(rate.Every(l.spacing), 1)
		}
		l.spacers[retailer] = lim
	}
	return lim
}
