// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is malformed, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// WatchRoute is a route scanned on the cron schedule. DaysAhead offsets the
// base departure date from "today" at scan time.
type WatchRoute struct {
	Origin      string
	Destination string
	DaysAhead   int
	FlexDays    int
}

// Config holds all runtime configuration for the farewatch service.
type Config struct {
	AppEnv string
	Port   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	FareAPIBaseURL  string
	FareAPIKeys     []string // credential ring, round-robin
	TrackedCarriers []string // airline-name substrings retained by the filter
	FetchPacingMs   int      // delay between dates in a flex window
	ScanCronSpec    string   // e.g. "@every 6h"
	WatchRoutes     []WatchRoute

	DashboardSigningSecret string
}

// Load reads environment variables (optionally from a .env file) and
// returns a validated Config.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGUser:     os.Getenv("PG_USER"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDatabase: os.Getenv("PG_DB"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		FareAPIBaseURL: getEnv("FARE_API_BASE_URL", "https://serpapi.com/search"),
		ScanCronSpec:   getEnv("SCAN_CRON", "@every 6h"),

		DashboardSigningSecret: getEnv("DASHBOARD_SIGNING_SECRET", "dev-insecure-secret"),
	}

	if keys := os.Getenv("FARE_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.FareAPIKeys = append(cfg.FareAPIKeys, k)
			}
		}
	}

	cfg.TrackedCarriers = []string{"JetBlue", "JSX"}
	if carriers := os.Getenv("TRACKED_CARRIERS"); carriers != "" {
		cfg.TrackedCarriers = nil
		for _, c := range strings.Split(carriers, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.TrackedCarriers = append(cfg.TrackedCarriers, c)
			}
		}
	}

	cfg.FetchPacingMs = 500
	if s := os.Getenv("FETCH_PACING_MS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("FETCH_PACING_MS must be a non-negative integer, got %q", s)
		}
		cfg.FetchPacingMs = v
	}

	if routes := os.Getenv("WATCH_ROUTES"); routes != "" {
		for _, entry := range strings.Split(routes, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			wr, err := parseWatchRoute(entry)
			if err != nil {
				return nil, fmt.Errorf("WATCH_ROUTES entry %q: %w", entry, err)
			}
			cfg.WatchRoutes = append(cfg.WatchRoutes, wr)
		}
	}

	return cfg, nil
}

// parseWatchRoute parses "JFK-LAX:45:2" (route, days ahead, flex days).
// Days ahead defaults to 30 and flex days to 0 when omitted.
func parseWatchRoute(entry string) (WatchRoute, error) {
	parts := strings.Split(entry, ":")
	airports := strings.Split(parts[0], "-")
	if len(airports) != 2 || airports[0] == "" || airports[1] == "" {
		return WatchRoute{}, fmt.Errorf("expected ORIG-DEST prefix")
	}

	wr := WatchRoute{
		Origin:      strings.ToUpper(strings.TrimSpace(airports[0])),
		Destination: strings.ToUpper(strings.TrimSpace(airports[1])),
		DaysAhead:   30,
	}

	if len(parts) > 1 && parts[1] != "" {
		v, err := strconv.Atoi(parts[1])
		if err != nil || v < 0 {
			return WatchRoute{}, fmt.Errorf("days ahead must be a non-negative integer")
		}
		wr.DaysAhead = v
	}
	if len(parts) > 2 && parts[2] != "" {
		v, err := strconv.Atoi(parts[2])
		if err != nil || v < 0 {
			return WatchRoute{}, fmt.Errorf("flex days must be a non-negative integer")
		}
		wr.FlexDays = v
	}

	return wr, nil
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// RedisAddr builds the redis address string.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
