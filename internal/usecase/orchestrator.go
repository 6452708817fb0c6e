package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/priceradar/backend/internal/domain"
)

// QueryOrchestrator fans one query out to every enabled retailer and fans
// the outcomes back in. It always waits for every retailer to report before
// returning: a slow but eventually-successful retailer is never dropped
// because a faster one failed, and an all-failed map is a valid result.
type QueryOrchestrator struct {
	fetcher *RetailerFetcher
}

// NewQueryOrchestrator creates an orchestrator using the given fetcher
func NewQueryOrchestrator(fetcher *RetailerFetcher) *QueryOrchestrator {
	return &QueryOrchestrator{fetcher: fetcher}
}

// Run dispatches one fetch per adapter concurrently and collects all
// outcomes. Concurrency is bounded indirectly by the fetcher's rate limiter.
func (o *QueryOrchestrator) Run(ctx context.Context, query string, adapters []domain.RetailerAdapter) map[string]domain.RetailerOutcome {
	outcomes := make(map[string]domain.RetailerOutcome, len(adapters))
	if len(adapters) == 0 {
		return outcomes
	}

	results := make(chan domain.RetailerOutcome, len(adapters))
	var wg sync.WaitGroup
	for _, adapter := range adapters {
		wg.Add(1)
		go func(a domain.RetailerAdapter) {
			defer wg.Done()
			results <- o.fetcher.Fetch(ctx, a, query)
		}(adapter)
	}
	wg.Wait()
	close(results)

	// Single-threaded fan-in; no outcome is shared before this point
	succeeded := 0
	for outcome := range results {
		outcomes[outcome.Retailer] = outcome
		if outcome.Success {
			succeeded++
		}
	}

	log.Printf("[SCRAPE] %q: %d/%d retailers succeeded", query, succeeded, len(adapters))
	return outcomes
}
