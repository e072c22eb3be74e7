package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Twilio TwilioConfig
	DB     DBConfig
	Redis  RedisConfig
	Scan   ScanConfig
	Source SourceConfig
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// RedisConfig configures the optional seen-id cache. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ScanConfig struct {
	MinDelayMinutes int
	MaxDelayMinutes int
	FetchTimeout    time.Duration
	DebugParse      bool
}

// SourceConfig describes one site/category/city combination being polled.
// One pipeline instance is parameterized by one of these instead of
// duplicating scan logic per deployment.
type SourceConfig struct {
	Name       string
	Host       string
	SearchPath string
	UserAgent  string

	// Search query knobs.
	MaxPrice    int
	PostedToday bool
	HasPic      bool
	DogFriendly bool
	Bedrooms    int

	// Row filters. PathPrefix skips rows whose link path does not start
	// with it (case-insensitive); empty disables the check. SkipReposts
	// skips rows flagged as reposts of another listing.
	PathPrefix  string
	SkipReposts bool

	Recipients []string
}

// BaseURL returns the absolute origin listing URLs are built against.
func (s SourceConfig) BaseURL() string {
	return "http://" + s.Host
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/37.0.2062.120 Safari/537.36"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var missing []string
	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		Twilio: TwilioConfig{
			AccountSID: require("CRAIGSBOT_TWILIO_ACCOUNT_SID"),
			AuthToken:  require("CRAIGSBOT_TWILIO_AUTH_TOKEN"),
			From:       require("CRAIGSBOT_NOTIFICATIONS_FROM"),
		},
		DB: DBConfig{
			Host:     getEnv("CRAIGSBOT_DB_HOST", "localhost"),
			Port:     getEnvInt("CRAIGSBOT_DB_PORT", 5432),
			Name:     getEnv("CRAIGSBOT_DB_NAME", "craigsbot"),
			User:     getEnv("CRAIGSBOT_DB_USER", "craigsbot"),
			Password: getEnv("CRAIGSBOT_DB_PASSWORD", "craigsbot"),
			SSLMode:  getEnv("CRAIGSBOT_DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("CRAIGSBOT_REDIS_ADDR", ""),
			Password: getEnv("CRAIGSBOT_REDIS_PASSWORD", ""),
			DB:       getEnvInt("CRAIGSBOT_REDIS_DB", 0),
		},
		Scan: ScanConfig{
			MinDelayMinutes: getEnvInt("CRAIGSBOT_SCAN_MIN_MINUTES", 10),
			MaxDelayMinutes: getEnvInt("CRAIGSBOT_SCAN_MAX_MINUTES", 30),
			FetchTimeout:    time.Duration(getEnvInt("CRAIGSBOT_FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
			DebugParse:      getEnvBool("CRAIGSBOT_DEBUG_PARSE", false),
		},
		Source: SourceConfig{
			Name:        getEnv("CRAIGSBOT_SOURCE_NAME", "sfbay"),
			Host:        getEnv("CRAIGSBOT_SOURCE_HOST", "sfbay.craigslist.org"),
			SearchPath:  getEnv("CRAIGSBOT_SEARCH_PATH", "/search/sfc/apa"),
			UserAgent:   getEnv("CRAIGSBOT_USER_AGENT", defaultUserAgent),
			MaxPrice:    getEnvInt("CRAIGSBOT_MAX_RENT", 4000),
			PostedToday: getEnvBool("CRAIGSBOT_POSTED_TODAY", true),
			HasPic:      getEnvBool("CRAIGSBOT_HAS_PIC", true),
			DogFriendly: getEnvBool("CRAIGSBOT_PETS_DOG", true),
			Bedrooms:    getEnvInt("CRAIGSBOT_BEDROOMS", 1),
			PathPrefix:  getEnv("CRAIGSBOT_PATH_PREFIX", "/sfc"),
			SkipReposts: getEnvBool("CRAIGSBOT_SKIP_REPOSTS", true),
			Recipients:  SplitNumbers(require("CRAIGSBOT_NOTIFICATIONS_TO")),
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variable: %s", strings.Join(missing, ", "))
	}
	if cfg.Scan.MinDelayMinutes < 1 || cfg.Scan.MaxDelayMinutes < cfg.Scan.MinDelayMinutes {
		return nil, fmt.Errorf("invalid scan delay range [%d, %d]", cfg.Scan.MinDelayMinutes, cfg.Scan.MaxDelayMinutes)
	}

	return cfg, nil
}

// SplitNumbers splits a comma-separated recipient list, dropping empty
// entries.
func SplitNumbers(val string) []string {
	var numbers []string
	for _, n := range strings.Split(val, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
