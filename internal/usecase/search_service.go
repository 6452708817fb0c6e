package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/priceradar/backend/internal/domain"
)

var cacheKeyCharsRegex = regexp.MustCompile(`[^a-z0-9ăâîșț\s,./]`)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL time.Duration
}

// SearchService is the serving-layer facade over the batch coordinator. It
// memoizes whole batch results by normalized input so repeated lookups of
// the same products within the TTL do not re-hit the retailers. The
// coordinator itself stays stateless; all caching lives here.
type SearchService struct {
	coordinator *MultiQueryCoordinator
	adapters    []domain.RetailerAdapter
	cache       domain.CacheRepository
	cacheTTL    time.Duration
}

// NewSearchService creates a search service with dependencies
func NewSearchService(
	coordinator *MultiQueryCoordinator,
	adapters []domain.RetailerAdapter,
	cache domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	return &SearchService{
		coordinator: coordinator,
		adapters:    adapters,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// Search runs a batch of product queries across all enabled retailers.
// Flow: check cache -> run batch -> cache -> return.
func (s *SearchService) Search(ctx context.Context, rawInput string) (*domain.BatchResult, error) {
	cacheKey := s.generateCacheKey(rawInput)

	if s.cache != nil {
		if value, err := s.cache.Get(ctx, cacheKey); err == nil {
			if cached, ok := value.(*domain.BatchResult); ok {
				return cached, nil
			}
		}
	}

	result, err := s.coordinator.RunBatch(ctx, rawInput, s.adapters)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			// A failed cache write never fails the search
		}
	}

	return result, nil
}

// Retailers lists the identifiers of all enabled retailers
func (s *SearchService) Retailers() []string {
	retailers := make([]string, 0, len(s.adapters))
	for _, adapter := range s.adapters {
		retailers = append(retailers, adapter.Retailer())
	}
	return retailers
}

// generateCacheKey creates a normalized cache key from the raw batch input.
// Format: "search:{normalized_input}"
func (s *SearchService) generateCacheKey(rawInput string) string {
	normalized := strings.ToLower(rawInput)
	normalized = cacheKeyCharsRegex.ReplaceAllString(normalized, "")
	normalized = multiSpacePattern.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("search:%s", strings.TrimSpace(normalized))
}
