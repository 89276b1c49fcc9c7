package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Matching   MatchingConfig
	Catalog    CatalogConfig
	Vocabulary VocabularyConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MatchingConfig holds the similarity thresholds for record linkage
type MatchingConfig struct {
	ProducerThreshold  float64 `mapstructure:"producer_threshold"`
	NameThreshold      float64 `mapstructure:"name_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CatalogConfig holds the record file locations
type CatalogConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	OutputFile string `mapstructure:"output_file"`
}

// VocabularyConfig overrides the built-in keyword lists. Empty lists keep
// the defaults.
type VocabularyConfig struct {
	ProducerStopWords []string `mapstructure:"producer_stop_words"`
	VariantKeywords   []string `mapstructure:"variant_keywords"`
	PackMarkers       []string `mapstructure:"pack_markers"`
	PackURLMarkers    []string `mapstructure:"pack_url_markers"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file first so viper sees its variables
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/brewdex/")

	// Environment variable settings
	v.SetEnvPrefix("BREWDEX")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Matching defaults, tuned against the Quebec beer catalogs
	v.SetDefault("matching.producer_threshold", 0.6)
	v.SetDefault("matching.name_threshold", 0.8)
	v.SetDefault("matching.enable_debug_logging", false)

	// Catalog defaults
	v.SetDefault("catalog.data_dir", "./data")
	v.SetDefault("catalog.output_file", "./data/beers_merged.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
}

// loadEnvFile loads KEY=VALUE pairs from a .env file in the working
// directory. A missing file is fine; existing environment variables are
// never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.DataDir == "" {
		return fmt.Errorf("catalog data directory is required (set BREWDEX_CATALOG_DATA_DIR)")
	}

	if config.Matching.ProducerThreshold < 0 || config.Matching.ProducerThreshold > 1 {
		return fmt.Errorf("producer threshold must be within [0, 1], got: %v", config.Matching.ProducerThreshold)
	}

	if config.Matching.NameThreshold < 0 || config.Matching.NameThreshold > 1 {
		return fmt.Errorf("name threshold must be within [0, 1], got: %v", config.Matching.NameThreshold)
	}

	return nil
}
