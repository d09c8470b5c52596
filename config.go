package passy

import (
	"fmt"
)

// Config controls an Engine. Build validates it once; the two core
// operations never see a bad config.
type Config struct {
	Generator GeneratorConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
GENERATOR CONFIG
====================================
*/

// GeneratorConfig picks the randomness provider.
type GeneratorConfig struct {
	Source string // "chacha" (default), "crypto", or "seeded"
	Seed   uint64 // seeded only
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the daemon starts from.
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			Source: SourceChaCha,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate reports the first problem found, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Generator.Source {
	case "", SourceChaCha, SourceCrypto, SourceSeeded:
	default:
		return fmt.Errorf("%w: Generator Source must be chacha, crypto, or seeded (got %q)", ErrInvalidConfig, c.Generator.Source)
	}
	if c.Generator.Source != SourceSeeded && c.Generator.Seed != 0 {
		return fmt.Errorf("%w: Generator Seed is only used by the seeded source", ErrInvalidConfig)
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return fmt.Errorf("%w: Audit BufferSize must be > 0 when audit is enabled", ErrInvalidConfig)
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return fmt.Errorf("%w: Metrics EnableLatencyHistograms requires Metrics Enabled", ErrInvalidConfig)
	}

	return nil
}
