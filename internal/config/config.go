// Package config provides configuration loading and validation for the
// pipeline and its CLI/server surfaces.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Pipeline limits
	QualityThreshold  float64 `json:"quality_threshold,omitempty"`   // Minimum quality score retained by the filter
	MaxContentItems   int     `json:"max_content_items,omitempty"`   // Filter truncation limit
	MaxContentSources int     `json:"max_content_sources,omitempty"` // Drives the per-source cap
	MaxBalancedItems  int     `json:"max_balanced_items,omitempty"`  // Diversity balancer output cap

	// Cache
	CacheTTLHours int `json:"cache_ttl_hours,omitempty"` // Query cache entry lifetime
	CacheCapacity int `json:"cache_capacity,omitempty"`  // Query cache entry bound

	// Collaborator timeouts, in seconds
	SearchTimeoutSeconds    int `json:"search_timeout_seconds,omitempty"`
	GeneratorTimeoutSeconds int `json:"generator_timeout_seconds,omitempty"`

	// Credentials and endpoints
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	SearchAPIKey   string `json:"search_api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"`

	// Behavior
	EnrichResults bool   `json:"enrich_results,omitempty"` // Fetch pages to fill missing metadata
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed progress information
	ListenAddr    string `json:"listen_addr,omitempty"`    // HTTP server bind address
}

// Defaults returns the standard configuration.
func Defaults() Config {
	return Config{
		QualityThreshold:        0.7,
		MaxContentItems:         30,
		MaxContentSources:       10,
		MaxBalancedItems:        20,
		CacheTTLHours:           24,
		CacheCapacity:           100,
		SearchTimeoutSeconds:    30,
		GeneratorTimeoutSeconds: 120,
		ListenAddr:              ":8080",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills credential fields from environment variables when unset.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv("SEARCH_API_KEY")
	}
	if c.SearchEngineID == "" {
		c.SearchEngineID = os.Getenv("SEARCH_ENGINE_ID")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.QualityThreshold < 0 || c.QualityThreshold > 1 {
		return fmt.Errorf("config error: 'quality_threshold' must be in [0,1]")
	}
	if c.MaxContentItems < 0 {
		return fmt.Errorf("config error: 'max_content_items' must be non-negative")
	}
	if c.MaxContentSources < 0 {
		return fmt.Errorf("config error: 'max_content_sources' must be non-negative")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("config error: 'cache_capacity' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.QualityThreshold == 0 {
		result.QualityThreshold = defaults.QualityThreshold
	}
	if result.MaxContentItems == 0 {
		result.MaxContentItems = defaults.MaxContentItems
	}
	if result.MaxContentSources == 0 {
		result.MaxContentSources = defaults.MaxContentSources
	}
	if result.MaxBalancedItems == 0 {
		result.MaxBalancedItems = defaults.MaxBalancedItems
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.CacheCapacity == 0 {
		result.CacheCapacity = defaults.CacheCapacity
	}
	if result.SearchTimeoutSeconds == 0 {
		result.SearchTimeoutSeconds = defaults.SearchTimeoutSeconds
	}
	if result.GeneratorTimeoutSeconds == 0 {
		result.GeneratorTimeoutSeconds = defaults.GeneratorTimeoutSeconds
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	return result
}

// SearchTimeout returns the search collaborator timeout as a duration.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSeconds) * time.Second
}

// GeneratorTimeout returns the generator collaborator timeout as a duration.
func (c *Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
