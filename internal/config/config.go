package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bookdesk/internal/platform/openlibrary"
	"bookdesk/internal/platform/restapi"
	"bookdesk/internal/search"
)

type Config struct {
	API      APIConfig
	Search   SearchConfig
	PageSize int
	// HintsDSN selects where last-created ids are kept; see hints.Open.
	HintsDSN string
	LogLevel string
	MockAddr string
	// MockSeed is an optional json-server db.json loaded by cmd/mockapi.
	MockSeed string

	// OpenLibraryURL is where `desk books add --lookup` fetches ISBN metadata.
	OpenLibraryURL string
}

type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
}

type SearchConfig struct {
	Mode         string
	Debounce     time.Duration
	MinIndicator time.Duration
}

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load creates a new Config from environment variables with defaults
func Load() *Config {
	LoadEnvFiles()
	return &Config{
		API: APIConfig{
			BaseURL:           getEnv("API_BASE_URL", restapi.DefaultBaseURL),
			Timeout:           getEnvDuration("API_TIMEOUT", 0),
			MaxRetries:        getEnvInt("API_MAX_RETRIES", 0),
			RequestsPerSecond: getEnvFloat("API_RPS", 0),
		},
		Search: SearchConfig{
			Mode:         getEnv("SEARCH_MODE", "explicit"),
			Debounce:     getEnvDuration("SEARCH_DEBOUNCE", search.DefaultDebounce),
			MinIndicator: getEnvDuration("SEARCH_MIN_INDICATOR", search.DefaultMinIndicator),
		},
		PageSize: getEnvInt("PAGE_SIZE", 10),
		HintsDSN: getEnv("HINTS_DSN", ".bookdesk/hints.json"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		MockAddr: getEnv("MOCK_ADDR", ":3000"),
		MockSeed: getEnv("MOCK_SEED", ""),

		OpenLibraryURL: getEnv("OPENLIBRARY_URL", openlibrary.DefaultBaseURL),
	}
}

// Client builds the gateway settings.
func (c *Config) Client(userAgent string) restapi.Config {
	return restapi.Config{
		BaseURL:           c.API.BaseURL,
		Timeout:           c.API.Timeout,
		MaxRetries:        c.API.MaxRetries,
		RequestsPerSecond: c.API.RequestsPerSecond,
		UserAgent:         userAgent,
	}
}

// Lookup builds the ISBN lookup client settings.
func (c *Config) Lookup(userAgent string) openlibrary.Config {
	return openlibrary.Config{
		BaseURL:    c.OpenLibraryURL,
		UserAgent:  userAgent,
		Timeout:    c.API.Timeout,
		MaxRetries: c.API.MaxRetries,
	}
}

// SearchOptions builds the search controller settings. An unknown mode falls
// back to explicit.
func (c *Config) SearchOptions() search.Options {
	mode, err := search.ParseMode(c.Search.Mode)
	if err != nil {
		slog.Warn("unknown search mode, using explicit", "mode", c.Search.Mode)
	}
	return search.Options{
		Mode:         mode,
		Debounce:     c.Search.Debounce,
		MinIndicator: c.Search.MinIndicator,
	}
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("750ms") or a bare number of
// milliseconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}
