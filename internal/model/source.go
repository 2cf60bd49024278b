package model

// SourceResult is the outcome of fetching one network's transaction history.
type SourceResult struct {
	ChainID uint64
	Market  string
	Items   []RawTransaction
	Loading bool
	Err     error
}

// SourceError identifies a failed source.
type SourceError struct {
	ChainID uint64 `json:"chainId"`
	Market  string `json:"market"`
	Error   string `json:"error"`
}

// HistoryRequest selects one wallet's history on one market.
type HistoryRequest struct {
	ChainID uint64
	Market  string
	User    string
}
