package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenontools/ppccalc/infrastructure/api"
	"github.com/xenontools/ppccalc/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  PPCCALC_HOST           Server host to bind to (default: 0.0.0.0)
  PPCCALC_PORT           Server port to listen on (default: 8080)
  PPCCALC_LOG_LEVEL      Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  PPCCALC_LOG_FORMAT     Log format: pretty, json (default: pretty)
  PPCCALC_REGIONS_FILE   YAML memory-region table overriding the built-in map`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	// Flags take precedence over env vars.
	cfg = cfg.WithHost(host).WithPort(port)

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	slogger.Info("starting ppccalc",
		slog.String("version", version),
		slog.String("addr", cfg.Addr()),
	)

	apiServer := api.NewAPIServer(engine, version)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.ListenAndServe(cfg.Addr())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slogger.Info("received signal, shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return apiServer.Shutdown(ctx)
}
