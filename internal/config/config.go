package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBPoolMaxConns    int
	DBPoolMinConns    int
	DBPoolMaxIdleTime time.Duration
	DBPoolMaxConnLife time.Duration

	APIKey         string   // API key for authentication
	TrustedProxies []string // proxies whose X-Forwarded-For header is honored

	// Gameplay knobs. The source variants disagreed on these values, so they
	// are configuration rather than constants.
	CollectCooldown      time.Duration // minimum time between collections
	ListingTTL           time.Duration // 0 disables listing expiry entirely
	UniqueListings       bool          // reject a second active listing per (seller, item)
	SweepInterval        time.Duration // how often the expiry sweeper runs
	CatalogCacheSize     int
	CatalogCacheTTL      time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "trove-api"),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "trove"),
		APIKey:      getEnv("API_KEY", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.DBPoolMaxConns, err = getEnvInt("DB_POOL_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	cfg.DBPoolMinConns, err = getEnvInt("DB_POOL_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	idleMinutes, err := getEnvInt("DB_POOL_MAX_IDLE_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	cfg.DBPoolMaxIdleTime = time.Duration(idleMinutes) * time.Minute
	lifeMinutes, err := getEnvInt("DB_POOL_MAX_LIFETIME_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.DBPoolMaxConnLife = time.Duration(lifeMinutes) * time.Minute

	cooldownHours, err := getEnvInt("COLLECT_COOLDOWN_HOURS", 3)
	if err != nil {
		return nil, err
	}
	if cooldownHours <= 0 {
		return nil, fmt.Errorf("COLLECT_COOLDOWN_HOURS must be positive, got %d", cooldownHours)
	}
	cfg.CollectCooldown = time.Duration(cooldownHours) * time.Hour

	ttlHours, err := getEnvInt("MARKET_LISTING_TTL_HOURS", 0)
	if err != nil {
		return nil, err
	}
	if ttlHours < 0 {
		return nil, fmt.Errorf("MARKET_LISTING_TTL_HOURS must not be negative, got %d", ttlHours)
	}
	cfg.ListingTTL = time.Duration(ttlHours) * time.Hour

	cfg.UniqueListings = getEnvBool("MARKET_UNIQUE_LISTINGS", true)

	sweepMinutes, err := getEnvInt("MARKET_SWEEP_INTERVAL_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	if sweepMinutes <= 0 {
		return nil, fmt.Errorf("MARKET_SWEEP_INTERVAL_MINUTES must be positive, got %d", sweepMinutes)
	}
	cfg.SweepInterval = time.Duration(sweepMinutes) * time.Minute

	cfg.CatalogCacheSize, err = getEnvInt("CATALOG_CACHE_SIZE", 512)
	if err != nil {
		return nil, err
	}
	cacheTTLMinutes, err := getEnvInt("CATALOG_CACHE_TTL_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	cfg.CatalogCacheTTL = time.Duration(cacheTTLMinutes) * time.Minute

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
