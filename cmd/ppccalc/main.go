// Package main is the entry point for the ppccalc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xenontools/ppccalc"
	"github.com/xenontools/ppccalc/domain/decode"
	"github.com/xenontools/ppccalc/internal/config"
	"github.com/xenontools/ppccalc/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppccalc",
		Short: "PowerPC recompilation calculator server",
		Long: `ppccalc serves the numeric toolkit used during PowerPC binary
recompilation: address arithmetic, two's-complement conversions,
bit-field manipulation, endianness swapping, and platform-specific
decoding, over MCP and a JSON HTTP API.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and the environment.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildEngine creates the engine, honoring a region-table override.
func buildEngine(cfg config.AppConfig, logger *log.Logger) (*ppccalc.Engine, error) {
	opts := []ppccalc.Option{
		ppccalc.WithLogger(logger.Slog()),
	}

	if path := cfg.RegionsFile(); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read region table: %w", err)
		}
		regions, err := decode.LoadRegions(raw)
		if err != nil {
			return nil, fmt.Errorf("load region table %s: %w", path, err)
		}
		opts = append(opts, ppccalc.WithRegions(regions))
	}

	return ppccalc.New(opts...), nil
}
