package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/priceradar/backend/internal/domain"
)

// FetcherConfig holds configuration for retailer fetches
type FetcherConfig struct {
	Timeout    time.Duration // per-attempt timeout
	MaxRetries int           // additional attempts after the first failure
}

// RetailerFetcher wraps one adapter call with rate limiting, a bounded
// timeout, a retry policy and failure classification. It never returns an
// error: every failure is encoded in the RetailerOutcome, which is how the
// orchestrator keeps one broken retailer from affecting the others.
type RetailerFetcher struct {
	limiter    *RateLimiter
	timeout    time.Duration
	maxRetries int
}

// NewRetailerFetcher creates a fetcher using the given limiter
func NewRetailerFetcher(limiter *RateLimiter, cfg FetcherConfig) *RetailerFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 1
	}
	return &RetailerFetcher{
		limiter:    limiter,
		timeout:    timeout,
		maxRetries: retries,
	}
}

// Fetch queries one retailer and reports the outcome. The rate limiter
// permit is held for the duration of the adapter call and released on every
// path, including cancellation.
func (f *RetailerFetcher) Fetch(ctx context.Context, adapter domain.RetailerAdapter, query string) domain.RetailerOutcome {
	retailer := adapter.Retailer()
	start := time.Now()

	if err := f.limiter.Acquire(ctx, retailer); err != nil {
		// Only happens on cancellation; the caller discards the batch anyway
		return failedOutcome(retailer, domain.ErrorKindTimeout, time.Since(start))
	}
	defer f.limiter.Release()

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if ctx.Err() != nil {
			break
		}

		offers, err := f.search(ctx, adapter, query)
		if err == nil {
			elapsed := time.Since(start)
			log.Printf("[FETCH] %s: %d offers for %q in %s", retailer, len(offers), query, elapsed.Round(time.Millisecond))
			return domain.RetailerOutcome{
				Retailer: retailer,
				Success:  true,
				Offers:   offers,
				Elapsed:  elapsed,
			}
		}

		lastErr = err
		log.Printf("[FETCH] %s: attempt %d/%d failed for %q: %v", retailer, attempt+1, f.maxRetries+1, query, err)
	}

	return failedOutcome(retailer, classify(lastErr), time.Since(start))
}

// search runs a single adapter attempt under the per-fetch timeout. A
// panicking adapter is treated as an unclassified failure rather than being
// allowed to take down the whole batch.
func (f *RetailerFetcher) search(ctx context.Context, adapter domain.RetailerAdapter, query string) (offers []domain.PriceOffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			offers, err = nil, fmt.Errorf("adapter panic: %v", r)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	return adapter.Search(callCtx, query)
}

// classify resolves an adapter error to its kind, folding context deadline
// errors into the timeout class
func classify(err error) domain.ErrorKind {
	if err == nil {
		return domain.ErrorKindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorKindTimeout
	}
	return domain.ClassifyError(err)
}

func failedOutcome(retailer string, kind domain.ErrorKind, elapsed time.Duration) domain.RetailerOutcome {
	return domain.RetailerOutcome{
		Retailer:  retailer,
		Success:   false,
		Offers:    []domain.PriceOffer{},
		Elapsed:   elapsed,
		ErrorKind: kind,
	}
}
