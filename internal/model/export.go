package model

// ExportRecord is one normalized transaction written to an export sink,
// tagged with the wallet and round that produced it.
type ExportRecord struct {
	Wallet     string `json:"wallet"`
	RoundID    string `json:"round_id"`
	Generation uint64 `json:"generation"`
	Position   int    `json:"position"`
	ExportedAt string `json:"exported_at"`

	Transaction NormalizedTransaction `json:"transaction"`
}
