package domain

import (
	"context"
	"time"
)

// RetailerAdapter is the capability each retailer integration exposes to the
// orchestration core. Search returns the offers found for a free-text query,
// or an error wrapping one of ErrTimeout, ErrTransport or ErrParse. Adapters
// own all site-specific fetching and extraction; the core never branches on
// which retailer is behind the interface.
type RetailerAdapter interface {
	// Retailer returns the stable identifier for this retailer (e.g. "emag")
	Retailer() string

	// Search looks up current offers for the given product query
	Search(ctx context.Context, query string) ([]PriceOffer, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
