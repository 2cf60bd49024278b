package history

import (
	"sort"
	"time"

	"lendingScope/internal/format"
	"lendingScope/internal/model"
)

// Result is one round's merged view across all networks.
type Result struct {
	Address      string
	Generation   uint64
	RoundID      string
	Transactions []model.NormalizedTransaction
	// Loading is true while any source is still pending.
	Loading bool
	// Err is the representative error: the first registered source's.
	Err error
	// Errors lists every failed source in registration order.
	Errors []model.SourceError
}

type entry struct {
	tx      model.RawTransaction
	chainID uint64
	ts      time.Time
	parsed  bool
}

// Aggregate merges the sources into one list ordered newest first and
// normalizes each record with its post-sort position. An invalid address
// yields an empty list.
func (n *Normalizer) Aggregate(address string, sources []model.SourceResult) []model.NormalizedTransaction {
	out := make([]model.NormalizedTransaction, 0)
	if !ValidAddress(address) {
		return out
	}

	entries := make([]entry, 0)
	for _, src := range sources {
		for _, tx := range src.Items {
			ts, ok := format.ParseTimestamp(tx.Timestamp)
			entries = append(entries, entry{tx: tx, chainID: src.ChainID, ts: ts, parsed: ok})
		}
	}

	sortEntries(entries)

	for i, e := range entries {
		out = append(out, n.Normalize(e.tx, i))
	}
	return out
}

// Combine builds the full round result: ordered transactions, the combined
// loading flag, and the source errors.
func (n *Normalizer) Combine(address string, sources []model.SourceResult) Result {
	res := Result{
		Address:      address,
		Transactions: n.Aggregate(address, sources),
	}
	if !ValidAddress(address) {
		return res
	}

	for _, src := range sources {
		if src.Loading {
			res.Loading = true
		}
		if src.Err != nil {
			res.Errors = append(res.Errors, model.SourceError{
				ChainID: src.ChainID,
				Market:  src.Market,
				Error:   src.Err.Error(),
			})
		}
	}
	if len(sources) > 0 {
		res.Err = sources[0].Err
	}
	return res
}

// sortEntries orders newest first. Equal timestamps fall back to chain id,
// then tx hash, then arrival order. Unparseable timestamps go last.
func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if a.parsed && !a.ts.Equal(b.ts) {
			return a.ts.After(b.ts)
		}
		if a.chainID != b.chainID {
			return a.chainID < b.chainID
		}
		return a.tx.TxHash < b.tx.TxHash
	})
}
