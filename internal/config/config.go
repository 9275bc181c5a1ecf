// Package config provides configuration management for DraftCoach.
package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// Discord
	DiscordToken string
	GuildID      string // empty registers commands globally

	// Statistics API
	StatsBaseURL string
	RankDays     int
	RankTier     string

	// Wiki fallback
	WikiURL          string
	WikiHTMLURL      string
	WikiHTMLSelector string

	// Retrieval
	ProxiesFile    string
	DisableProxies bool
	HTTPTimeout    time.Duration

	// Paths
	HeroTablesFile string

	// Logging
	LogLevel string
	LogFile  string

	// Health check
	HealthAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Statistics API
		StatsBaseURL: strings.TrimRight(getEnvOrDefault("STATS_BASE_URL", "https://mlbb-proxy.tonycelestino.workers.dev/stats"), "/"),
		RankDays:     getEnvInt("RANK_DAYS", 7),
		RankTier:     getEnvOrDefault("RANK_TIER", "Mythic"),

		// Wiki fallback
		WikiURL:          getEnvOrDefault("WIKI_URL", "https://mlbb-proxy.tonycelestino.workers.dev/wiki/heroes"),
		WikiHTMLURL:      os.Getenv("WIKI_HTML_URL"),
		WikiHTMLSelector: getEnvOrDefault("WIKI_HTML_SELECTOR", "table.wikitable td:first-child a"),

		// Retrieval
		ProxiesFile:    os.Getenv("PROXIES_FILE"),
		DisableProxies: getEnvBool("DISABLE_PROXIES", false),
		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", 15*time.Second),

		// Paths
		HeroTablesFile: os.Getenv("HERO_TABLES_FILE"),

		// Logging
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		// Health check
		HealthAddr: getEnvOrDefault("HEALTH_ADDR", ":8080"),
	}

	return cfg, nil
}

// Validate checks if all required configuration values are set.
func (c *Config) Validate() error {
	var errs []string

	if c.DiscordToken == "" {
		errs = append(errs, "DISCORD_TOKEN is missing")
	}
	if !isHTTPURL(c.StatsBaseURL) {
		errs = append(errs, "STATS_BASE_URL must be an absolute http(s) URL")
	}
	if !isHTTPURL(c.WikiURL) {
		errs = append(errs, "WIKI_URL must be an absolute http(s) URL")
	}
	if c.WikiHTMLURL != "" && !isHTTPURL(c.WikiHTMLURL) {
		errs = append(errs, "WIKI_HTML_URL must be an absolute http(s) URL")
	}
	if c.RankDays <= 0 {
		errs = append(errs, "RANK_DAYS must be positive")
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, "HTTP_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(errs, "; "))
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
