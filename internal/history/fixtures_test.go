package history

import "lendingScope/internal/model"

const (
	testAddress = "0x57ab7ee15cE5ECacB1aB84EE42D5A9d0d8112922"
	otherWallet = "0x1111111111111111111111111111111111111111"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var ethereum = &model.Chain{Name: "Ethereum", Icon: "https://statics.aave.com/ethereum.svg", ChainID: 1}

func usdtReserve(chain *model.Chain) *model.Reserve {
	return &model.Reserve{
		Market: &model.Market{
			Name:    "AaveV3Ethereum",
			Icon:    "https://statics.aave.com/ethereum.svg",
			Address: "0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2",
			Chain:   chain,
		},
		UnderlyingToken: &model.TokenInfo{Symbol: "USDT", ImageURL: "https://tokens/usdt.png", Decimals: 6},
		AToken:          &model.TokenInfo{Symbol: "aEthUSDT"},
	}
}

func supplyTx(hash, ts string) model.RawTransaction {
	return model.RawTransaction{
		Typename:         "UserSupplyTransaction",
		TxHash:           hash,
		Timestamp:        ts,
		BlockExplorerURL: "https://etherscan.io/tx/" + hash,
		Amount: &model.USDAmount{
			Amount: &model.Amount{Value: "490000"},
			USD:    "490287.5810000",
		},
		Reserve: usdtReserve(ethereum),
	}
}

func collateralTx(hash, ts string, enabled bool) model.RawTransaction {
	return model.RawTransaction{
		TxHash:           hash,
		Timestamp:        ts,
		BlockExplorerURL: "https://etherscan.io/tx/" + hash,
		Enabled:          boolPtr(enabled),
		Reserve:          usdtReserve(ethereum),
	}
}
