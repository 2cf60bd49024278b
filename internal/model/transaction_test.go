package model

import (
	"encoding/json"
	"testing"
)

func TestRawTransactionKeepsFieldPresence(t *testing.T) {
	payload := `{
		"enabled": false,
		"reserve": {"underlyingToken": {"symbol": "USDT"}, "market": {"name": "AaveV3Ethereum"}},
		"txHash": "0x01",
		"timestamp": "2024-01-09T06:56:59+00:00",
		"blockExplorerUrl": "https://etherscan.io/tx/0x01"
	}`

	var tx RawTransaction
	if err := json.Unmarshal([]byte(payload), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if tx.Enabled == nil {
		t.Fatalf("enabled=false should be present")
	}
	if *tx.Enabled {
		t.Fatalf("enabled should be false")
	}
	if tx.Amount != nil || tx.Collateral != nil || tx.DebtRepaid != nil {
		t.Fatalf("absent fields should stay nil: %+v", tx)
	}
	if tx.Reserve == nil || tx.Reserve.Market == nil || tx.Reserve.Market.Chain != nil {
		t.Fatalf("reserve market without chain mismatch: %+v", tx.Reserve)
	}
}

func TestUSDAmountHasRaw(t *testing.T) {
	empty := ""
	raw := "1205064784434"

	cases := []struct {
		name   string
		amount *USDAmount
		want   bool
	}{
		{name: "nil", amount: nil, want: false},
		{name: "no inner amount", amount: &USDAmount{USD: "1"}, want: false},
		{name: "no raw", amount: &USDAmount{Amount: &Amount{Value: "1"}}, want: false},
		{name: "empty raw", amount: &USDAmount{Amount: &Amount{Value: "1", Raw: &empty}}, want: false},
		{name: "raw", amount: &USDAmount{Amount: &Amount{Value: "1", Raw: &raw}}, want: true},
	}

	for _, tc := range cases {
		if got := tc.amount.HasRaw(); got != tc.want {
			t.Fatalf("%s: HasRaw=%v want %v", tc.name, got, tc.want)
		}
	}
}
