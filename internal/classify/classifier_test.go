package classify

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"lendingScope/internal/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func reserve(withVToken bool) *model.Reserve {
	r := &model.Reserve{
		Market:          &model.Market{Name: "AaveV3Ethereum"},
		UnderlyingToken: &model.TokenInfo{Symbol: "USDT"},
		AToken:          &model.TokenInfo{Symbol: "aEthUSDT"},
	}
	if withVToken {
		r.VToken = &model.TokenInfo{Symbol: "variableDebtEthUSDT"}
	}
	return r
}

func amount(raw, usdPerToken *string) *model.USDAmount {
	return &model.USDAmount{
		Amount:      &model.Amount{Value: "10", Raw: raw},
		USD:         "10",
		USDPerToken: usdPerToken,
	}
}

func TestClassifyDiscriminator(t *testing.T) {
	cases := map[string]model.TxType{
		"SupplyTx":                         model.TxSupply,
		"WithdrawTx":                       model.TxWithdraw,
		"BorrowTx":                         model.TxBorrow,
		"RepayTx":                          model.TxRepay,
		"UsageAsCollateralTx":              model.TxCollateral,
		"LiquidationCallTx":                model.TxLiquidation,
		"UserSupplyTransaction":            model.TxSupply,
		"UserWithdrawTransaction":          model.TxWithdraw,
		"UserBorrowTransaction":            model.TxBorrow,
		"UserRepayTransaction":             model.TxRepay,
		"UserUsageAsCollateralTransaction": model.TxCollateral,
		"UserLiquidationCallTransaction":   model.TxLiquidation,
	}

	c := New(nil)
	for typename, want := range cases {
		got := c.Inspect(model.RawTransaction{Typename: typename})
		if got.Type != want {
			t.Fatalf("%s: got %s want %s", typename, got.Type, want)
		}
		if got.Source != SourceDiscriminator {
			t.Fatalf("%s: source %s", typename, got.Source)
		}
	}
}

func TestClassifyDiscriminatorWinsOverShape(t *testing.T) {
	tx := model.RawTransaction{
		Typename: "UserBorrowTransaction",
		Amount:   amount(nil, nil),
		Reserve:  reserve(false),
	}

	got := New(nil).Inspect(tx)
	if got.Type != model.TxBorrow {
		t.Fatalf("type mismatch: %s", got.Type)
	}
	if got.Structural != model.TxSupply {
		t.Fatalf("structural mismatch: %s", got.Structural)
	}
	if !got.Anomaly {
		t.Fatalf("expected anomaly for tier disagreement")
	}
}

func TestClassifyAgreementIsNotAnomaly(t *testing.T) {
	tx := model.RawTransaction{
		Typename: "UserWithdrawTransaction",
		Amount:   amount(strPtr("1205064784434"), strPtr("0.99962906")),
		Reserve:  reserve(false),
	}

	got := New(nil).Inspect(tx)
	if got.Type != model.TxWithdraw || got.Anomaly {
		t.Fatalf("unexpected classification: %+v", got)
	}
}

func TestClassifyUnknownDiscriminatorFallsThrough(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(zap.New(core))

	got := c.Inspect(model.RawTransaction{
		Typename: "UserFlashLoanTransaction",
		Enabled:  boolPtr(true),
		Reserve:  reserve(false),
	})

	if got.Type != model.TxCollateral || got.Source != SourceStructural {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if logs.FilterMessage("unknown transaction type").Len() != 1 {
		t.Fatalf("expected unknown type warning, got %v", logs.All())
	}
}

func TestClassifyStructuralPriority(t *testing.T) {
	leg := &model.LiquidationLeg{Reserve: reserve(false), Amount: amount(nil, nil)}

	cases := []struct {
		name string
		tx   model.RawTransaction
		want model.TxType
		rule string
	}{
		{
			name: "liquidation beats everything",
			tx: model.RawTransaction{
				Collateral: leg,
				DebtRepaid: leg,
				Enabled:    boolPtr(true),
				Amount:     amount(strPtr("1"), strPtr("1")),
				Reserve:    reserve(true),
			},
			want: model.TxLiquidation,
			rule: "liquidation",
		},
		{
			name: "collateral beats amount",
			tx: model.RawTransaction{
				Enabled: boolPtr(false),
				Amount:  amount(strPtr("1"), strPtr("1")),
				Reserve: reserve(false),
			},
			want: model.TxCollateral,
			rule: "collateral",
		},
		{
			name: "only collateral leg is not liquidation",
			tx:   model.RawTransaction{Collateral: leg, Amount: amount(nil, nil), Reserve: reserve(false)},
			want: model.TxSupply,
			rule: "amount",
		},
		{
			name: "raw and usdPerToken is withdraw",
			tx:   model.RawTransaction{Amount: amount(strPtr("1205064784434"), strPtr("0.99")), Reserve: reserve(true)},
			want: model.TxWithdraw,
			rule: "amount",
		},
		{
			name: "vToken with raw is repay",
			tx:   model.RawTransaction{Amount: amount(strPtr("5"), nil), Reserve: reserve(true)},
			want: model.TxRepay,
			rule: "amount",
		},
		{
			name: "vToken without raw is borrow",
			tx:   model.RawTransaction{Amount: amount(nil, strPtr("1")), Reserve: reserve(true)},
			want: model.TxBorrow,
			rule: "amount",
		},
		{
			name: "empty raw counts as absent",
			tx:   model.RawTransaction{Amount: amount(strPtr(""), strPtr("1")), Reserve: reserve(true)},
			want: model.TxBorrow,
			rule: "amount",
		},
		{
			name: "plain amount is supply",
			tx:   model.RawTransaction{Amount: amount(nil, nil), Reserve: reserve(false)},
			want: model.TxSupply,
			rule: "amount",
		},
		{
			name: "amount without reserve is supply",
			tx:   model.RawTransaction{Amount: amount(strPtr("1"), nil)},
			want: model.TxSupply,
			rule: "amount",
		},
	}

	c := New(nil)
	for _, tc := range cases {
		got := c.Inspect(tc.tx)
		if got.Type != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got.Type, tc.want)
		}
		if got.Source != SourceStructural || got.Rule != tc.rule {
			t.Fatalf("%s: source=%s rule=%s", tc.name, got.Source, got.Rule)
		}
	}
}

func TestClassifyDefaultsToSupply(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(zap.New(core))

	got := c.Inspect(model.RawTransaction{TxHash: "0xabc"})
	if got.Type != model.TxSupply || got.Source != SourceDefault {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if c.Classify(model.RawTransaction{}) != model.TxSupply {
		t.Fatalf("classify should default to supply")
	}
}
