// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DataDir is the directory holding the persisted plan blob. Required.
	DataDir string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// EnrichmentEnabled toggles the background summary and cover-image
	// lookups. Defaults to true; set ENRICHMENT_ENABLED=false to run fully
	// offline.
	EnrichmentEnabled bool

	// WikipediaAPIURL is the MediaWiki action API endpoint used for city
	// summary search.
	WikipediaAPIURL string

	// WikipediaRestURL is the base of the Wikipedia REST API used for page
	// summaries.
	WikipediaRestURL string

	// UnsplashAPIURL is the base of the Unsplash API used for cover photos.
	UnsplashAPIURL string

	// UnsplashAccessKey authenticates Unsplash lookups. Optional; when empty
	// the cover image lookup is disabled and plans keep their placeholder.
	UnsplashAccessKey string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		EnrichmentEnabled: getEnv("ENRICHMENT_ENABLED", "true") != "false",
		WikipediaAPIURL:   getEnv("WIKIPEDIA_API_URL", "https://en.wikipedia.org/w/api.php"),
		WikipediaRestURL:  getEnv("WIKIPEDIA_REST_URL", "https://en.wikipedia.org/api/rest_v1"),
		UnsplashAPIURL:    getEnv("UNSPLASH_API_URL", "https://api.unsplash.com"),
		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string

	cfg.DataDir = os.Getenv("DATA_DIR")
	if cfg.DataDir == "" {
		missing = append(missing, "DATA_DIR")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
