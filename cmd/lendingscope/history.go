package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lendingScope/internal/config"
	"lendingScope/internal/history"
	"lendingScope/internal/storage"
	"lendingScope/internal/storage/postgres"
)

func runHistory(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHistory(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Address == "" {
		return fmt.Errorf("address is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newSource(cfg.Source, logger)
	if err != nil {
		return err
	}

	svc := history.NewService(history.Config{
		ChainIDs:     cfg.Source.ChainIDs,
		FetchTimeout: cfg.Source.FetchTimeout,
	}, src, src, logger, nil)

	logger.Info("history start",
		zap.String("address", cfg.Address),
		zap.Uint64s("chains", cfg.Source.ChainIDs),
		zap.String("format", cfg.Format),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	res, err := svc.Query(ctx, cfg.Address)
	if err != nil {
		return err
	}
	if !history.ValidAddress(cfg.Address) {
		logger.Warn("invalid address, nothing fetched", zap.String("address", cfg.Address))
	}
	for _, srcErr := range res.Errors {
		logger.Warn("network failed", zap.Uint64("chain_id", srcErr.ChainID), zap.String("error", srcErr.Error))
	}

	if err := render(os.Stdout, cfg.Format, res); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return export(ctx, cfg, res, logger)
}

func export(ctx context.Context, cfg config.HistoryConfig, res history.Result, logger *zap.Logger) error {
	if len(res.Transactions) == 0 {
		return nil
	}

	var sinks []storage.Storage
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}
	if len(sinks) == 0 {
		return nil
	}

	records := storage.BuildRecords(res.Address, res.RoundID, res.Generation, res.Transactions, time.Now())
	for _, sink := range sinks {
		if err := sink.PutTransactionBatch(ctx, records); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	logger.Info("history exported", zap.Int("records", len(records)), zap.Int("sinks", len(sinks)))
	return nil
}
