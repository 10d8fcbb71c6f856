package ppccalc

import (
	"log/slog"

	"github.com/xenontools/ppccalc/domain/decode"
)

// engineConfig holds configuration for Engine construction.
type engineConfig struct {
	regions *decode.RegionTable
	logger  *slog.Logger
}

func newEngineConfig() *engineConfig {
	return &engineConfig{
		regions: decode.DefaultRegions,
		logger:  slog.Default(),
	}
}

// Option configures the Engine.
type Option func(*engineConfig)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegions replaces the built-in guest memory region table.
func WithRegions(regions *decode.RegionTable) Option {
	return func(c *engineConfig) {
		if regions != nil {
			c.regions = regions
		}
	}
}
