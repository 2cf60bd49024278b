package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingScope/internal/model"
)

// Schema creates the tables used by the export sink.
const Schema = `
CREATE TABLE IF NOT EXISTS wallet_transactions (
	wallet             TEXT        NOT NULL,
	id                 TEXT        NOT NULL,
	position           INTEGER     NOT NULL,
	tx_type            TEXT        NOT NULL,
	tx_hash            TEXT        NOT NULL,
	token_symbol       TEXT        NOT NULL,
	amount             TEXT,
	usd_amount         TEXT,
	market_name        TEXT        NOT NULL,
	chain_name         TEXT        NOT NULL,
	tx_timestamp       TEXT        NOT NULL,
	block_explorer_url TEXT        NOT NULL,
	enabled            BOOLEAN,
	round_id           TEXT        NOT NULL,
	generation         BIGINT      NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (wallet, id)
);

CREATE TABLE IF NOT EXISTS wallet_export_state (
	wallet     TEXT        PRIMARY KEY,
	round_id   TEXT        NOT NULL,
	generation BIGINT      NOT NULL,
	row_count  INTEGER     NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// dbtx is the statement surface shared by the pool and a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type database interface {
	dbtx
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store provides Postgres persistence for exported wallet histories.
type Store struct {
	pool *pgxpool.Pool
	db   database
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, db: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutTransactionBatch replaces a wallet's exported history with one round.
// Rows left by earlier rounds are deleted, the round is upserted and the
// export state is saved, all in one transaction. Every record must belong to
// the same wallet and round.
func (s *Store) PutTransactionBatch(ctx context.Context, records []model.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}
	first := records[0]
	wallet, err := walletKey(first.Wallet)
	if err != nil {
		return err
	}
	for _, rec := range records[1:] {
		if rec.RoundID != first.RoundID || !strings.EqualFold(rec.Wallet, first.Wallet) {
			return fmt.Errorf("batch mixes rounds or wallets: %s/%s and %s/%s", first.Wallet, first.RoundID, rec.Wallet, rec.RoundID)
		}
	}

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM wallet_transactions WHERE wallet=$1 AND round_id <> $2`, wallet, first.RoundID); err != nil {
			return fmt.Errorf("delete stale rows: %w", err)
		}
		if err := upsertTransactions(ctx, tx, records); err != nil {
			return err
		}
		return saveExportState(ctx, tx, ExportState{
			Wallet:     wallet,
			RoundID:    first.RoundID,
			Generation: first.Generation,
			RowCount:   len(records),
		})
	})
}

// UpsertTransactions inserts or updates exported transactions keyed by (wallet, id).
func (s *Store) UpsertTransactions(ctx context.Context, records []model.ExportRecord) error {
	return upsertTransactions(ctx, s.db, records)
}

func upsertTransactions(ctx context.Context, db dbtx, records []model.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range records {
		row, err := transactionRow(rec)
		if err != nil {
			return err
		}
		batch.Queue(upsertTransactionSQL, row...)
	}

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert transaction: %w", err)
		}
	}
	return nil
}

const upsertTransactionSQL = `
	INSERT INTO wallet_transactions (
		wallet, id, position, tx_type, tx_hash, token_symbol, amount, usd_amount,
		market_name, chain_name, tx_timestamp, block_explorer_url, enabled,
		round_id, generation, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
	ON CONFLICT (wallet, id)
	DO UPDATE SET
		position = EXCLUDED.position,
		tx_type = EXCLUDED.tx_type,
		tx_hash = EXCLUDED.tx_hash,
		token_symbol = EXCLUDED.token_symbol,
		amount = EXCLUDED.amount,
		usd_amount = EXCLUDED.usd_amount,
		market_name = EXCLUDED.market_name,
		chain_name = EXCLUDED.chain_name,
		tx_timestamp = EXCLUDED.tx_timestamp,
		block_explorer_url = EXCLUDED.block_explorer_url,
		enabled = EXCLUDED.enabled,
		round_id = EXCLUDED.round_id,
		generation = EXCLUDED.generation,
		updated_at = now()
`

// ExportState is the last round exported for a wallet.
type ExportState struct {
	Wallet     string
	RoundID    string
	Generation uint64
	RowCount   int
}

// LoadExportState returns the last export state for a wallet.
func (s *Store) LoadExportState(ctx context.Context, wallet string) (ExportState, bool, error) {
	key, err := walletKey(wallet)
	if err != nil {
		return ExportState{}, false, err
	}
	state := ExportState{Wallet: key}
	var generation int64
	row := s.db.QueryRow(ctx, `SELECT round_id, generation, row_count FROM wallet_export_state WHERE wallet=$1`, key)
	if err := row.Scan(&state.RoundID, &generation, &state.RowCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ExportState{}, false, nil
		}
		return ExportState{}, false, err
	}
	state.Generation = uint64(generation)
	return state, true, nil
}

// SaveExportState stores the last export state for a wallet.
func (s *Store) SaveExportState(ctx context.Context, state ExportState) error {
	return saveExportState(ctx, s.db, state)
}

func saveExportState(ctx context.Context, db dbtx, state ExportState) error {
	key, err := walletKey(state.Wallet)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO wallet_export_state (wallet, round_id, generation, row_count, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (wallet) DO UPDATE SET
			round_id = EXCLUDED.round_id,
			generation = EXCLUDED.generation,
			row_count = EXCLUDED.row_count,
			updated_at = now()
	`, key, state.RoundID, int64(state.Generation), state.RowCount)
	if err != nil {
		return fmt.Errorf("save export state: %w", err)
	}
	return nil
}

// walletKey lowercases a wallet address so checksummed and plain inputs share rows.
func walletKey(wallet string) (string, error) {
	if !common.IsHexAddress(wallet) {
		return "", fmt.Errorf("invalid wallet address %q", wallet)
	}
	return strings.ToLower(common.HexToAddress(wallet).Hex()), nil
}

func transactionRow(rec model.ExportRecord) ([]any, error) {
	key, err := walletKey(rec.Wallet)
	if err != nil {
		return nil, err
	}
	tx := rec.Transaction
	hash := tx.TxHash
	if isTxHash(hash) {
		hash = strings.ToLower(common.HexToHash(hash).Hex())
	}
	return []any{
		key,
		tx.ID,
		rec.Position,
		string(tx.Type),
		hash,
		tx.TokenSymbol,
		tx.Amount,
		tx.USDAmount,
		tx.MarketName,
		tx.ChainName,
		tx.Timestamp,
		tx.BlockExplorerURL,
		tx.Enabled,
		rec.RoundID,
		int64(rec.Generation),
	}, nil
}

func isTxHash(value string) bool {
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		return false
	}
	body := value[2:]
	if len(body) != 2*common.HashLength {
		return false
	}
	for _, c := range body {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
