package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lendingScope/internal/aave"
	"lendingScope/internal/config"
	"lendingScope/internal/history"
)

func main() {
	root := &cobra.Command{
		Use:          "lendingscope",
		Short:        "Lending protocol wallet history viewer",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// A missing .env is fine; real env vars and flags still apply.
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().String("config", "", "config file path")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print a wallet's merged transaction history",
		RunE:  runHistory,
	}

	historyCmd.Flags().String("address", "", "wallet address (0x-prefixed)")
	addSourceFlags(historyCmd)
	historyCmd.Flags().String("format", config.FormatTable, "output format (table, json, jsonl)")
	historyCmd.Flags().String("out", "", "optional JSONL export path")
	historyCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for export")
	historyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(historyCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wallet histories over HTTP",
		RunE:  runServe,
	}

	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	addSourceFlags(serveCmd)
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("chains", nil, "chain ids to query (comma-separated, default all supported mainnets)")
	cmd.Flags().String("api-url", aave.DefaultEndpoint, "GraphQL API endpoint")
	cmd.Flags().String("fixture", "", "read history from a JSON fixture instead of the API")
	cmd.Flags().Duration("fetch-timeout", 15*time.Second, "per-network fetch timeout")
	cmd.Flags().Duration("request-timeout", 30*time.Second, "HTTP client timeout")
}

// source is both the market directory and the history fetcher.
type source interface {
	history.Directory
	history.Fetcher
}

func newSource(cfg config.SourceConfig, logger *zap.Logger) (source, error) {
	if cfg.Fixture != "" {
		src, err := aave.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		logger.Info("using fixture source", zap.String("path", cfg.Fixture))
		return src, nil
	}
	return aave.NewClient(cfg.APIURL, cfg.RequestTimeout), nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
