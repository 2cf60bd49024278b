package model

// TokenInfo describes an ERC20 token as returned by the lending API.
type TokenInfo struct {
	Address  string `json:"address"`
	ChainID  uint64 `json:"chainId,omitempty"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Amount is a token amount. Raw is the unscaled integer value and is only
// populated by some transaction kinds.
type Amount struct {
	Raw      *string `json:"raw,omitempty"`
	Value    string  `json:"value"`
	Decimals *uint8  `json:"decimals,omitempty"`
}

// USDAmount pairs a token amount with its USD valuation.
type USDAmount struct {
	Amount      *Amount `json:"amount,omitempty"`
	USD         string  `json:"usd"`
	USDPerToken *string `json:"usdPerToken,omitempty"`
}

// HasRaw reports whether the amount carries a non-empty raw value.
func (a *USDAmount) HasRaw() bool {
	return a != nil && a.Amount != nil && a.Amount.Raw != nil && *a.Amount.Raw != ""
}

// Reserve pairs a market with the underlying asset.
type Reserve struct {
	Market          *Market    `json:"market,omitempty"`
	UnderlyingToken *TokenInfo `json:"underlyingToken,omitempty"`
	AToken          *TokenInfo `json:"aToken,omitempty"`
	VToken          *TokenInfo `json:"vToken,omitempty"`
	USDExchangeRate string     `json:"usdExchangeRate,omitempty"`
	PermitSupported bool       `json:"permitSupported,omitempty"`
}

// LiquidationLeg is one side of a liquidation call.
type LiquidationLeg struct {
	Reserve *Reserve   `json:"reserve,omitempty"`
	Amount  *USDAmount `json:"amount,omitempty"`
}

// RawTransaction is the union of all user transaction shapes. Which fields
// are set depends on the kind; nil means the field was absent in the payload.
type RawTransaction struct {
	Typename         string `json:"__typename,omitempty"`
	TxHash           string `json:"txHash"`
	Timestamp        string `json:"timestamp"`
	BlockExplorerURL string `json:"blockExplorerUrl"`

	Amount  *USDAmount `json:"amount,omitempty"`
	Reserve *Reserve   `json:"reserve,omitempty"`

	Enabled *bool `json:"enabled,omitempty"`

	Collateral *LiquidationLeg `json:"collateral,omitempty"`
	DebtRepaid *LiquidationLeg `json:"debtRepaid,omitempty"`
}
