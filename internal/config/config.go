// Package config loads passyd settings from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Cfg holds all runtime configuration for the daemon.
type Cfg struct {
	ListenAddr string // PASSY_LISTEN_ADDR, default :8787

	// Rate limiting is off when RedisAddr is empty.
	RedisAddr  string        // PASSY_REDIS_ADDR
	RateLimit  int           // PASSY_RATE_LIMIT requests per window, default 120
	RateWindow time.Duration // PASSY_RATE_WINDOW, default 1m

	// Bridge tokens are not required when BridgeSecret is empty.
	BridgeSecret string        // PASSY_BRIDGE_SECRET
	TokenTTL     time.Duration // PASSY_TOKEN_TTL, default 5m

	RandomSource string // PASSY_RANDOM_SOURCE: chacha, crypto or seeded
	Seed         uint64 // PASSY_SEED, seeded source only

	Metrics        bool // PASSY_METRICS, default true
	LatencyMetrics bool // PASSY_LATENCY_METRICS, default false
	Audit          bool // PASSY_AUDIT, default false
	OTel           bool // PASSY_OTEL, register on the global meter provider

	LogLevel  logrus.Level // PASSY_LOG_LEVEL, default info
	LogFormat string       // PASSY_LOG_FORMAT: text or json
}

// Load reads .env (if present) then environment variables and returns Cfg.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Cfg, error) {
	var errs []error
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(get(key, def))
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, get(key, def)))
		}
		return d
	}
	boolean := func(key string, def bool) bool {
		raw := get(key, strconv.FormatBool(def))
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		}
		return b
	}

	cfg := &Cfg{
		ListenAddr:     get("PASSY_LISTEN_ADDR", ":8787"),
		RedisAddr:      get("PASSY_REDIS_ADDR", ""),
		RateWindow:     duration("PASSY_RATE_WINDOW", "1m"),
		BridgeSecret:   getenv("PASSY_BRIDGE_SECRET"),
		TokenTTL:       duration("PASSY_TOKEN_TTL", "5m"),
		RandomSource:   strings.ToLower(get("PASSY_RANDOM_SOURCE", "chacha")),
		Metrics:        boolean("PASSY_METRICS", true),
		LatencyMetrics: boolean("PASSY_LATENCY_METRICS", false),
		Audit:          boolean("PASSY_AUDIT", false),
		OTel:           boolean("PASSY_OTEL", false),
		LogFormat:      strings.ToLower(get("PASSY_LOG_FORMAT", "text")),
	}

	limit, err := strconv.Atoi(get("PASSY_RATE_LIMIT", "120"))
	if err != nil || limit < 0 {
		errs = append(errs, fmt.Errorf("PASSY_RATE_LIMIT: invalid limit %q", get("PASSY_RATE_LIMIT", "120")))
	}
	cfg.RateLimit = limit

	if raw := get("PASSY_SEED", ""); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("PASSY_SEED: invalid seed %q", raw))
		}
		cfg.Seed = seed
	}

	level, err := logrus.ParseLevel(get("PASSY_LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("PASSY_LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("PASSY_LOG_FORMAT: must be text or json, got %q", cfg.LogFormat))
	}
	if cfg.BridgeSecret != "" && len(cfg.BridgeSecret) < 16 {
		errs = append(errs, errors.New("PASSY_BRIDGE_SECRET: must be at least 16 bytes"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger returns a logrus logger configured from the level and format.
func (c *Cfg) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
