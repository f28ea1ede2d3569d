package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults describe the plain run: sherdog from id 1 into
// sherdog-fighters.csv, forever. An empty Host leaves the site's own root.
const (
	DefaultSite    = "sherdog"
	DefaultOutput  = "sherdog-fighters.csv"
	DefaultTimeout = 30 * time.Second
)

// Config holds the values command-line flags start from. Every field can be
// set through an FSCRAPE_* environment variable, optionally read from .env.
type Config struct {
	Site     string
	Host     string
	Output   string
	ProxyURL string
	LogLevel string
	Start    int
	Timeout  time.Duration
	Delay    time.Duration
}

// Load reads .env when present and returns the environment-derived defaults.
// The bool reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	return &Config{
		Site:     getEnv("FSCRAPE_SITE", DefaultSite),
		Host:     getEnv("FSCRAPE_HOST", ""),
		Output:   getEnv("FSCRAPE_OUTPUT", DefaultOutput),
		ProxyURL: getEnv("FSCRAPE_PROXY", ""),
		LogLevel: getEnv("FSCRAPE_LOG_LEVEL", "info"),
		Start:    getEnvInt("FSCRAPE_START", 1),
		Timeout:  getEnvDuration("FSCRAPE_TIMEOUT", DefaultTimeout),
		Delay:    getEnvDuration("FSCRAPE_DELAY", 0),
	}, found
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
