package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"

	// ServiceName is reported by GET /health.
	ServiceName string // default: "gas-safe-scraper"

	// ScrapeMode selects the strategy once at startup: "live" or "degraded".
	ScrapeMode string // default: "live"

	// FallbackDegraded switches to degraded mode when live mode is requested
	// but no browser binary can be resolved at startup.
	FallbackDegraded bool // default: false
}

// BrowserConfig controls the per-request browser sessions.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxSessions is the number of browser processes allowed at once.
	MaxSessions int // default: 2

	// PoolWait is how long a request may queue for a free session.
	PoolWait time.Duration // default: 10s

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects go-rod/stealth evasions before navigation.
	Stealth bool // default: true

	// BlockedResourceTypes lists resource types the hijack router drops.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// ScraperConfig controls the search flow against the register.
type ScraperConfig struct {
	// TargetURL is the register's search page.
	TargetURL string // default: https://www.gassaferegister.co.uk/find-an-engineer/

	// NavigationTimeout bounds page.Navigate and the initial load.
	NavigationTimeout time.Duration // default: 30s

	// InputTimeout bounds the wait for the search input to appear.
	InputTimeout time.Duration // default: 10s

	// ResultTimeout bounds the race between results and no-results.
	ResultTimeout time.Duration // default: 15s

	// UserAgent is sent by every session.
	UserAgent string
}

// AuthConfig controls API key authentication. An empty APIKey disables it.
type AuthConfig struct {
	APIKey string
}

// CORSConfig controls cross-origin access. Empty AllowedOrigins means "*".
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key (or client IP).
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per identity.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	return &Config{
		Server: ServerConfig{
			Host:             envOr("GASSAFE_HOST", "0.0.0.0"),
			Port:             envIntOr("PORT", envIntOr("GASSAFE_PORT", 3000)),
			Mode:             envOr("GASSAFE_GIN_MODE", "release"),
			ServiceName:      envOr("GASSAFE_SERVICE_NAME", "gas-safe-scraper"),
			ScrapeMode:       strings.ToLower(envOr("GASSAFE_MODE", "live")),
			FallbackDegraded: envBoolOr("GASSAFE_FALLBACK_DEGRADED", false),
		},
		Browser: BrowserConfig{
			Headless:    envBoolOr("GASSAFE_HEADLESS", true),
			MaxSessions: envIntOr("GASSAFE_MAX_SESSIONS", 2),
			PoolWait:    envDurationOr("GASSAFE_POOL_WAIT", 10*time.Second),
			BrowserBin:  envOr("GASSAFE_BROWSER_BIN", os.Getenv("PUPPETEER_EXECUTABLE_PATH")),
			Stealth:     envBoolOr("GASSAFE_STEALTH", true),
			BlockedResourceTypes: envSliceOr("GASSAFE_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Scraper: ScraperConfig{
			TargetURL:         envOr("GASSAFE_TARGET_URL", "https://www.gassaferegister.co.uk/find-an-engineer/"),
			NavigationTimeout: envDurationOr("GASSAFE_NAV_TIMEOUT", 30*time.Second),
			InputTimeout:      envDurationOr("GASSAFE_INPUT_TIMEOUT", 10*time.Second),
			ResultTimeout:     envDurationOr("GASSAFE_RESULT_TIMEOUT", 15*time.Second),
			UserAgent:         envOr("GASSAFE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		},
		Auth: AuthConfig{
			APIKey: os.Getenv("API_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: envSliceOr("ALLOWED_ORIGINS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("GASSAFE_RATE_RPS", 1.0),
			Burst:             envIntOr("GASSAFE_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("GASSAFE_LOG_LEVEL", "info"),
			Format: envOr("GASSAFE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
