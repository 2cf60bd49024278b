package model

// NormalizedTransaction is the uniform display record for any transaction kind.
type NormalizedTransaction struct {
	ID               string  `json:"id"`
	Type             TxType  `json:"type"`
	TokenSymbol      string  `json:"tokenSymbol"`
	TokenImageURL    string  `json:"tokenImageUrl"`
	Amount           *string `json:"amount,omitempty"`
	USDAmount        *string `json:"usdAmount,omitempty"`
	MarketName       string  `json:"marketName"`
	MarketIcon       string  `json:"marketIcon"`
	ChainName        string  `json:"chainName"`
	ChainIcon        string  `json:"chainIcon"`
	Timestamp        string  `json:"timestamp"`
	TxHash           string  `json:"txHash"`
	BlockExplorerURL string  `json:"blockExplorerUrl"`
	Enabled          *bool   `json:"enabled,omitempty"`
}
