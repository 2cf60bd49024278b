package model

// Chain is a network supported by the lending protocol.
type Chain struct {
	Name               string `json:"name"`
	Icon               string `json:"icon"`
	ChainID            uint64 `json:"chainId"`
	ExplorerURL        string `json:"explorerUrl"`
	IsTestnet          bool   `json:"isTestnet"`
	NativeWrappedToken string `json:"nativeWrappedToken,omitempty"`
}

// Market is a lending market deployment on one chain.
type Market struct {
	Name    string `json:"name"`
	Chain   *Chain `json:"chain,omitempty"`
	Address string `json:"address"`
	Icon    string `json:"icon"`
}
