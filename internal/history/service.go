package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lendingScope/internal/metrics"
	"lendingScope/internal/model"
)

var (
	// ErrSuperseded is returned when a newer round started before this one
	// finished. Its results are discarded.
	ErrSuperseded = errors.New("round superseded")
	// ErrMarketNotFound marks a configured network without a listed market.
	ErrMarketNotFound = errors.New("market not found")
)

// DefaultChainIDs are the mainnets queried when none are configured:
// Ethereum, Polygon, Arbitrum, Optimism, Avalanche, Base, BNB Chain.
var DefaultChainIDs = []uint64{1, 137, 42161, 10, 43114, 8453, 56}

// Directory lists networks and their markets.
type Directory interface {
	Chains(ctx context.Context) ([]model.Chain, error)
	Markets(ctx context.Context, chainIDs []uint64) ([]model.Market, error)
}

// Fetcher loads one wallet's raw history on one market.
type Fetcher interface {
	UserTransactionHistory(ctx context.Context, req model.HistoryRequest) ([]model.RawTransaction, error)
}

// Config controls query behavior.
type Config struct {
	ChainIDs     []uint64
	FetchTimeout time.Duration
}

// Service runs query rounds: one concurrent fetch per network, joined and
// merged once every fetch has settled.
type Service struct {
	cfg        Config
	directory  Directory
	fetcher    Fetcher
	normalizer *Normalizer
	logger     *zap.Logger
	metrics    *metrics.Metrics

	generation atomic.Uint64

	mu     sync.RWMutex
	latest Result
}

func NewService(cfg Config, directory Directory, fetcher Fetcher, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.ChainIDs) == 0 {
		cfg.ChainIDs = DefaultChainIDs
	}
	return &Service{
		cfg:        cfg,
		directory:  directory,
		fetcher:    fetcher,
		normalizer: NewNormalizer(logger, m),
		logger:     logger,
		metrics:    m,
	}
}

// Query starts a new round for address and returns its merged result. An
// invalid address yields an empty result without fetching. If a newer round
// starts before this one completes, Query returns ErrSuperseded.
func (s *Service) Query(ctx context.Context, address string) (Result, error) {
	if s.directory == nil {
		return Result{}, fmt.Errorf("directory is nil")
	}
	if s.fetcher == nil {
		return Result{}, fmt.Errorf("fetcher is nil")
	}

	gen := s.generation.Add(1)
	roundID := uuid.NewString()
	logger := s.logger.With(zap.Uint64("generation", gen), zap.String("round_id", roundID))

	if !ValidAddress(address) {
		logger.Debug("invalid address, skipping fetch", zap.String("address", address))
		s.metrics.RecordRound("invalid_address")
		res := s.normalizer.Combine(address, nil)
		res.Generation = gen
		res.RoundID = roundID
		return res, s.publish(res)
	}

	targets, err := s.resolveSources(ctx)
	if err != nil {
		return Result{}, err
	}

	logger.Info("round start", zap.String("address", address), zap.Int("sources", len(targets)))
	started := time.Now()

	sources := s.fetchAll(ctx, address, targets, logger)

	if s.generation.Load() != gen {
		logger.Info("round superseded", zap.Uint64("current", s.generation.Load()))
		s.metrics.RecordRound("superseded")
		return Result{}, ErrSuperseded
	}

	res := s.normalizer.Combine(address, sources)
	res.Generation = gen
	res.RoundID = roundID

	if err := s.publish(res); err != nil {
		logger.Info("round superseded at publish")
		s.metrics.RecordRound("superseded")
		return Result{}, err
	}
	s.metrics.RecordRound("published")

	logger.Info("round complete",
		zap.Int("transactions", len(res.Transactions)),
		zap.Int("failed_sources", len(res.Errors)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// Latest returns the most recently published result.
func (s *Service) Latest() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Service) publish(res Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Generation < s.latest.Generation {
		return ErrSuperseded
	}
	s.latest = res
	return nil
}

// fetchAll issues every fetch concurrently. A failure is recorded in its own
// slot and never cancels the other fetches.
func (s *Service) fetchAll(ctx context.Context, address string, targets []model.SourceResult, logger *zap.Logger) []model.SourceResult {
	results := make([]model.SourceResult, len(targets))
	var g errgroup.Group

	for i, target := range targets {
		i, target := i, target
		if target.Err != nil {
			results[i] = target
			continue
		}
		g.Go(func() error {
			results[i] = s.fetchOne(ctx, address, target, logger)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) fetchOne(ctx context.Context, address string, target model.SourceResult, logger *zap.Logger) model.SourceResult {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	started := time.Now()
	items, err := s.fetcher.UserTransactionHistory(ctx, model.HistoryRequest{
		ChainID: target.ChainID,
		Market:  target.Market,
		User:    address,
	})
	s.metrics.ObserveFetch(strconv.FormatUint(target.ChainID, 10), time.Since(started), len(items), err)

	if err != nil {
		logger.Warn("fetch history failed", zap.Uint64("chain_id", target.ChainID), zap.String("market", target.Market), zap.Error(err))
		target.Err = fmt.Errorf("chain %d: %w", target.ChainID, err)
		return target
	}

	logger.Debug("fetch history", zap.Uint64("chain_id", target.ChainID), zap.Int("items", len(items)))
	target.Items = items
	return target
}

// resolveSources maps each configured mainnet to its first listed market.
// The returned order is the configured order; the first entry is the
// representative source for errors.
func (s *Service) resolveSources(ctx context.Context) ([]model.SourceResult, error) {
	chains, err := s.directory.Chains(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chains: %w", err)
	}

	testnet := make(map[uint64]bool, len(chains))
	for _, c := range chains {
		testnet[c.ChainID] = c.IsTestnet
	}

	chainIDs := make([]uint64, 0, len(s.cfg.ChainIDs))
	for _, id := range s.cfg.ChainIDs {
		if testnet[id] {
			s.logger.Debug("skip testnet chain", zap.Uint64("chain_id", id))
			continue
		}
		chainIDs = append(chainIDs, id)
	}
	if len(chainIDs) == 0 {
		return nil, nil
	}

	markets, err := s.directory.Markets(ctx, chainIDs)
	if err != nil {
		return nil, fmt.Errorf("load markets: %w", err)
	}

	firstMarket := make(map[uint64]string, len(markets))
	for _, m := range markets {
		if m.Chain == nil {
			continue
		}
		if _, ok := firstMarket[m.Chain.ChainID]; !ok {
			firstMarket[m.Chain.ChainID] = m.Address
		}
	}

	targets := make([]model.SourceResult, 0, len(chainIDs))
	for _, id := range chainIDs {
		target := model.SourceResult{ChainID: id, Market: firstMarket[id]}
		if target.Market == "" {
			target.Err = fmt.Errorf("chain %d: %w", id, ErrMarketNotFound)
		}
		targets = append(targets, target)
	}
	return targets, nil
}
