package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Cache     CacheConfig
	Retailers RetailersConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds the limits of the retailer fan-out engine
type ScraperConfig struct {
	MaxConcurrent  int           `mapstructure:"max_concurrent"`   // global in-flight fetch ceiling
	RetailerDelay  time.Duration `mapstructure:"retailer_delay"`   // min spacing between fetches at one retailer
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`    // per-attempt adapter timeout
	MaxRetries     int           `mapstructure:"max_retries"`      // retries after the first failed attempt
	TopK           int           `mapstructure:"top_k"`            // ranked offers kept per query
	MaxQueries     int           `mapstructure:"max_queries"`      // queries accepted per batch
	MinQueryLength int           `mapstructure:"min_query_length"` // shortest usable query fragment
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RetailersConfig holds per-retailer settings. Empty base URLs fall back to
// the production sites; tests point them at local servers.
type RetailersConfig struct {
	Enabled      []string `mapstructure:"enabled"`
	EmagBaseURL  string   `mapstructure:"emag_base_url"`
	AltexBaseURL string   `mapstructure:"altex_base_url"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/priceradar/")

	// Environment variable settings
	v.SetEnvPrefix("PRICERADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Scraper defaults: small ceiling and seconds-scale spacing out of
	// politeness towards the retailer sites
	v.SetDefault("scraper.max_concurrent", 3)
	v.SetDefault("scraper.retailer_delay", "2s")
	v.SetDefault("scraper.fetch_timeout", "30s")
	v.SetDefault("scraper.max_retries", 1)
	v.SetDefault("scraper.top_k", 3)
	v.SetDefault("scraper.max_queries", 5)
	v.SetDefault("scraper.min_query_length", 2)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "15m")

	// Retailer defaults
	v.SetDefault("retailers.enabled", []string{"emag", "altex"})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Scraper.MaxConcurrent < 1 {
		return fmt.Errorf("scraper.max_concurrent must be at least 1, got: %d", config.Scraper.MaxConcurrent)
	}

	if config.Scraper.MaxQueries < 1 {
		return fmt.Errorf("scraper.max_queries must be at least 1, got: %d", config.Scraper.MaxQueries)
	}

	if config.Scraper.MaxRetries < 0 {
		return fmt.Errorf("scraper.max_retries must not be negative, got: %d", config.Scraper.MaxRetries)
	}

	for _, retailer := range config.Retailers.Enabled {
		if retailer != "emag" && retailer != "altex" {
			return fmt.Errorf("unknown retailer in retailers.enabled: %s", retailer)
		}
	}

	return nil
}
