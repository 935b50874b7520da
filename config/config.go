package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	WatchlistPath string
	LatestPath    string
	BestPath      string

	CatalogURL    string
	UserAgent     string
	SelectorsFile string
	UseChrome     bool
	ChromeBin     string

	CheckInterval time.Duration
	FetchTimeout  time.Duration
	MaxRetries    int
	RetryBaseMs   int

	AppendNewCodes bool
	Currency       string
	Debug          bool
}

// Load reads the .env file(s) and returns a populated Config struct.
// With no arguments it looks for ./.env.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		WatchlistPath: getEnv("WATCHLIST_PATH", "data/wanted-sets.txt"),
		LatestPath:    getEnv("LATEST_PATH", "data/latest.txt"),
		BestPath:      getEnv("BEST_PATH", "data/best.txt"),

		CatalogURL: getEnv("CATALOG_URL", "http://zklockow.pl/lego-speed-champions"),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		SelectorsFile: getEnv("SELECTORS_FILE", ""),
		UseChrome:     getEnvBool("USE_CHROME", false),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		CheckInterval: time.Duration(getEnvInt("CHECK_INTERVAL_SEC", 10)) * time.Second,
		FetchTimeout:  time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 30)) * time.Second,
		MaxRetries:    getEnvInt("MAX_RETRIES", 2),
		RetryBaseMs:   getEnvInt("RETRY_BASE_MS", 1000),

		AppendNewCodes: getEnvBool("APPEND_NEW_CODES", true),
		Currency:       getEnv("CURRENCY", "PLN"),
		Debug:          getEnvBool("LOG_DEBUG", false),
	}
}

// Validate checks that required fields are set and values are usable.
func (c *Config) Validate() error {
	if c.WatchlistPath == "" || c.LatestPath == "" || c.BestPath == "" {
		return errors.New("WATCHLIST_PATH, LATEST_PATH and BEST_PATH must be set")
	}
	if c.LatestPath == c.BestPath {
		return errors.New("LATEST_PATH and BEST_PATH must differ")
	}
	if c.CatalogURL == "" {
		return errors.New("CATALOG_URL must be set")
	}
	if c.CheckInterval <= 0 {
		return errors.New("CHECK_INTERVAL_SEC must be > 0")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT_SEC must be > 0")
	}
	if c.MaxRetries < 1 {
		return errors.New("MAX_RETRIES must be >= 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		log.Printf("[config] Invalid bool for %s=%q, using default %t", key, val, fallback)
	}
	return fallback
}
