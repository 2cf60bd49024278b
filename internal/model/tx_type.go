package model

// TxType is the display classification of a user transaction.
type TxType string

const (
	TxSupply      TxType = "Supply"
	TxWithdraw    TxType = "Withdraw"
	TxBorrow      TxType = "Borrow"
	TxRepay       TxType = "Repay"
	TxCollateral  TxType = "Collateral"
	TxLiquidation TxType = "Liquidation"
)
