package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// envPrefix namespaces every rate limit variable.
const envPrefix = "TRACKER_RATE_LIMIT_"

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Denylist        map[string]bool
	Rules           []Rule
}

func (c Config) idleTTL() time.Duration {
	if c.IdleTTL > 0 {
		return c.IdleTTL
	}
	return time.Hour
}

// DefaultConfig is used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// DefaultRules throttles writes harder than reads; reads fall back to the default limit.
func DefaultRules() []Rule {
	return []Rule{
		// Destructive
		{Method: "POST", Path: "/reset", Limit: 5, Window: time.Hour, Burst: 2},

		// Writes
		{Method: "POST", Path: "/semesters", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "PUT", Path: "/semesters/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "DELETE", Path: "/semesters/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "PUT", Path: "/settings", Limit: 30, Window: time.Minute, Burst: 5},

		// Workbook generation
		{Method: "GET", Path: "/export.xlsx", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig reads TRACKER_RATE_LIMIT_* variables over DefaultConfig.
//
//	TRACKER_RATE_LIMIT_ENABLED           bool
//	TRACKER_RATE_LIMIT_DEFAULT_LIMIT     int
//	TRACKER_RATE_LIMIT_DEFAULT_WINDOW    duration
//	TRACKER_RATE_LIMIT_CLEANUP_INTERVAL  duration
//	TRACKER_RATE_LIMIT_ALLOWLIST         comma separated IPs
//	TRACKER_RATE_LIMIT_DENYLIST          comma separated IPs
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = env("ENABLED", cfg.Enabled, strconv.ParseBool)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = env("DEFAULT_LIMIT", cfg.DefaultLimit, strconv.Atoi)
	cfg.DefaultWindow = env("DEFAULT_WINDOW", cfg.DefaultWindow, time.ParseDuration)
	cfg.CleanupInterval = env("CLEANUP_INTERVAL", cfg.CleanupInterval, time.ParseDuration)
	cfg.Allowlist = parseIPList(os.Getenv(envPrefix + "ALLOWLIST"))
	cfg.Denylist = parseIPList(os.Getenv(envPrefix + "DENYLIST"))
	return &cfg
}

// env parses TRACKER_RATE_LIMIT_<name>, keeping def when unset or malformed.
func env[T any](name string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(envPrefix + name)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
