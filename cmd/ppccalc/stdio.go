package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xenontools/ppccalc/internal/log"
	"github.com/xenontools/ppccalc/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants call the recompilation calculator tools directly.
Configuration is loaded from environment variables and the .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// The MCP transport owns stdout, so logs go to stderr.
	logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
	slogger := logger.Slog()

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	slogger.Info("starting MCP server on stdio", slog.String("version", version))

	mcpServer := mcp.NewServer(engine, version, slogger)
	return mcpServer.ServeStdio()
}
