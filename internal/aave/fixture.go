package aave

import (
	"context"
	"fmt"
	"os"
	"strings"

	"lendingScope/internal/model"
)

// FixtureSource serves chains, markets and history from a saved
// userTransactionHistory response. Every request sees the same wallet.
type FixtureSource struct {
	items []model.RawTransaction
}

// LoadFixture reads a JSON file shaped like the API's history response
// data: {"userTransactionHistory": {"items": [...]}}.
func LoadFixture(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	items, err := decodeHistory(data)
	if err != nil {
		return nil, err
	}
	return NewFixtureSource(items), nil
}

func NewFixtureSource(items []model.RawTransaction) *FixtureSource {
	return &FixtureSource{items: items}
}

// Chains returns the distinct chains referenced by the fixture's markets.
func (f *FixtureSource) Chains(ctx context.Context) ([]model.Chain, error) {
	seen := make(map[uint64]bool)
	var out []model.Chain
	for _, m := range f.markets() {
		if m.Chain == nil || seen[m.Chain.ChainID] {
			continue
		}
		seen[m.Chain.ChainID] = true
		out = append(out, *m.Chain)
	}
	return out, nil
}

// Markets returns the fixture's markets on the given chains.
func (f *FixtureSource) Markets(ctx context.Context, chainIDs []uint64) ([]model.Market, error) {
	want := make(map[uint64]bool, len(chainIDs))
	for _, id := range chainIDs {
		want[id] = true
	}
	var out []model.Market
	for _, m := range f.markets() {
		if m.Chain != nil && want[m.Chain.ChainID] {
			out = append(out, m)
		}
	}
	return out, nil
}

// UserTransactionHistory returns the items recorded against req.Market.
func (f *FixtureSource) UserTransactionHistory(ctx context.Context, req model.HistoryRequest) ([]model.RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.RawTransaction
	for _, tx := range f.items {
		if m := marketOf(tx); m != nil && strings.EqualFold(m.Address, req.Market) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// markets collects distinct markets by address, filling in the chain from
// whichever item carries it.
func (f *FixtureSource) markets() []model.Market {
	index := make(map[string]int)
	var out []model.Market
	for _, tx := range f.items {
		m := marketOf(tx)
		if m == nil || m.Address == "" {
			continue
		}
		key := strings.ToLower(m.Address)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, model.Market{Name: m.Name, Address: m.Address, Icon: m.Icon, Chain: m.Chain})
			continue
		}
		if out[i].Chain == nil && m.Chain != nil {
			out[i].Chain = m.Chain
		}
	}
	return out
}

func marketOf(tx model.RawTransaction) *model.Market {
	reserve := tx.Reserve
	if reserve == nil && tx.Collateral != nil {
		reserve = tx.Collateral.Reserve
	}
	if reserve == nil {
		return nil
	}
	return reserve.Market
}
