package main

import (
	"fmt"
	"log"
	"os"

	"github.com/priceradar/backend/config"
	httpDelivery "github.com/priceradar/backend/internal/delivery/http"
	"github.com/priceradar/backend/internal/domain"
	"github.com/priceradar/backend/internal/infrastructure/cache"
	"github.com/priceradar/backend/internal/infrastructure/retailer"
	"github.com/priceradar/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceRadar Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Retailers: %v", cfg.Retailers.Enabled)
	log.Printf("Limits: concurrent=%d, delay=%s, timeout=%s, retries=%d",
		cfg.Scraper.MaxConcurrent, cfg.Scraper.RetailerDelay,
		cfg.Scraper.FetchTimeout, cfg.Scraper.MaxRetries)

	// Retailer adapters
	client := retailer.NewClient(cfg.Scraper.FetchTimeout)
	adapters := buildAdapters(cfg, client)
	if len(adapters) == 0 {
		log.Fatalf("No retailers enabled")
	}

	// Orchestration core
	limiter := usecase.NewRateLimiter(cfg.Scraper.MaxConcurrent, cfg.Scraper.RetailerDelay)
	fetcher := usecase.NewRetailerFetcher(limiter, usecase.FetcherConfig{
		Timeout:    cfg.Scraper.FetchTimeout,
		MaxRetries: cfg.Scraper.MaxRetries,
	})
	orchestrator := usecase.NewQueryOrchestrator(fetcher)
	coordinator := usecase.NewMultiQueryCoordinator(orchestrator, usecase.CoordinatorConfig{
		TopK:           cfg.Scraper.TopK,
		MaxQueries:     cfg.Scraper.MaxQueries,
		MinQueryLength: cfg.Scraper.MinQueryLength,
	})

	// Result cache
	var resultCache domain.CacheRepository
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache()
		log.Printf("Result cache enabled, TTL: %s", cfg.Cache.TTL)
	}

	searchService := usecase.NewSearchService(coordinator, adapters, resultCache, usecase.SearchServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildAdapters instantiates one adapter per enabled retailer
func buildAdapters(cfg *config.Config, client *retailer.Client) []domain.RetailerAdapter {
	var adapters []domain.RetailerAdapter
	for _, name := range cfg.Retailers.Enabled {
		switch name {
		case "emag":
			adapters = append(adapters, retailer.NewEmagAdapter(client, cfg.Retailers.EmagBaseURL))
		case "altex":
			adapters = append(adapters, retailer.NewAltexAdapter(client, cfg.Retailers.AltexBaseURL))
		default:
			log.Printf("Skipping unknown retailer %q", name)
		}
	}
	return adapters
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
