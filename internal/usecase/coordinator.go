package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/priceradar/backend/internal/domain"
)

// CoordinatorConfig holds configuration for batch coordination
type CoordinatorConfig struct {
	TopK           int
	MaxQueries     int
	MinQueryLength int
}

// MultiQueryCoordinator accepts a raw multi-product input, splits it into a
// bounded list of queries and runs each one through the orchestrator and
// aggregator concurrently. Queries are independent units of work: one slow
// query never starves another, and a defect in one query's orchestration is
// recovered into an empty QueryResult so batch output order and cardinality
// always match the retained input.
type MultiQueryCoordinator struct {
	orchestrator *QueryOrchestrator
	topK         int
	maxQueries   int
	minLength    int
}

// NewMultiQueryCoordinator creates a coordinator with the given limits
func NewMultiQueryCoordinator(orchestrator *QueryOrchestrator, cfg CoordinatorConfig) *MultiQueryCoordinator {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	maxQueries := cfg.MaxQueries
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	minLength := cfg.MinQueryLength
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}
	return &MultiQueryCoordinator{
		orchestrator: orchestrator,
		topK:         topK,
		maxQueries:   maxQueries,
		minLength:    minLength,
	}
}

// RunBatch is the sole entry point of the core. It returns one QueryResult
// per retained query in input order, or ErrEmptyBatch when no fragment of
// the raw input survives normalization, or the context error when the whole
// batch call is cancelled.
func (c *MultiQueryCoordinator) RunBatch(ctx context.Context, rawInput string, adapters []domain.RetailerAdapter) (*domain.BatchResult, error) {
	queries, dropped := ParseBatchInput(rawInput, c.maxQueries, c.minLength)
	if len(queries) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if dropped > 0 {
		log.Printf("[BATCH] dropped %d queries over the %d-query cap", dropped, c.maxQueries)
	}

	// Result positions are fixed at dispatch time, not at completion time
	results := make([]domain.QueryResult, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			results[i] = c.runQuery(ctx, query, adapters)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.BatchResult{Results: results, Dropped: dropped}, nil
}

// runQuery orchestrates and ranks a single query, converting a panic in the
// orchestration into an all-empty result so sibling queries are unaffected
func (c *MultiQueryCoordinator) runQuery(ctx context.Context, query string, adapters []domain.RetailerAdapter) (result domain.QueryResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[BATCH] query %q panicked: %v", query, r)
			result = domain.QueryResult{
				Query:      query,
				Outcomes:   map[string]domain.RetailerOutcome{},
				BestOffers: []domain.PriceOffer{},
			}
		}
	}()

	outcomes := c.orchestrator.Run(ctx, query, adapters)
	return domain.QueryResult{
		Query:      query,
		Outcomes:   outcomes,
		BestOffers: RankOffers(outcomes, c.topK),
		Stats:      ComputeStats(outcomes),
	}
}
