package storage

import (
	"context"
	"time"

	"lendingScope/internal/model"
)

// Storage defines a sink for exported transactions.
type Storage interface {
	PutTransactionBatch(ctx context.Context, records []model.ExportRecord) error
}

// BuildRecords tags a round's ordered transactions for export.
func BuildRecords(wallet, roundID string, generation uint64, txs []model.NormalizedTransaction, exportedAt time.Time) []model.ExportRecord {
	stamp := exportedAt.UTC().Format(time.RFC3339Nano)
	records := make([]model.ExportRecord, 0, len(txs))
	for i, tx := range txs {
		records = append(records, model.ExportRecord{
			Wallet:      wallet,
			RoundID:     roundID,
			Generation:  generation,
			Position:    i,
			ExportedAt:  stamp,
			Transaction: tx,
		})
	}
	return records
}
