package classify

import (
	"go.uber.org/zap"

	"lendingScope/internal/model"
)

// Source names the tier that produced a classification.
type Source string

const (
	SourceDiscriminator Source = "discriminator"
	SourceStructural    Source = "structural"
	SourceDefault       Source = "default"
)

var discriminators = map[string]model.TxType{
	"SupplyTx":            model.TxSupply,
	"WithdrawTx":          model.TxWithdraw,
	"BorrowTx":            model.TxBorrow,
	"RepayTx":             model.TxRepay,
	"UsageAsCollateralTx": model.TxCollateral,
	"LiquidationCallTx":   model.TxLiquidation,

	"UserSupplyTransaction":            model.TxSupply,
	"UserWithdrawTransaction":          model.TxWithdraw,
	"UserBorrowTransaction":            model.TxBorrow,
	"UserRepayTransaction":             model.TxRepay,
	"UserUsageAsCollateralTransaction": model.TxCollateral,
	"UserLiquidationCallTransaction":   model.TxLiquidation,
}

// Classification is the full verdict for one raw record.
type Classification struct {
	Type   model.TxType
	Source Source
	// Structural is the rule-chain verdict, computed even when the
	// discriminator decided. Empty when no rule matched.
	Structural model.TxType
	Rule       string
	// Anomaly is set when a known discriminator and the structural verdict
	// disagree.
	Anomaly bool
}

// Classifier maps raw records onto display types.
type Classifier struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{logger: logger}
}

// ByDiscriminator maps a discriminator value to its type.
func ByDiscriminator(typename string) (model.TxType, bool) {
	t, ok := discriminators[typename]
	return t, ok
}

// Classify returns the display type of tx. It never fails.
func (c *Classifier) Classify(tx model.RawTransaction) model.TxType {
	return c.Inspect(tx).Type
}

// Inspect classifies tx and reports how the decision was made.
func (c *Classifier) Inspect(tx model.RawTransaction) Classification {
	structural, ruleName, sniffed := Sniff(tx)

	if tx.Typename != "" {
		if t, ok := ByDiscriminator(tx.Typename); ok {
			out := Classification{
				Type:       t,
				Source:     SourceDiscriminator,
				Structural: structural,
				Rule:       ruleName,
				Anomaly:    sniffed && structural != t,
			}
			if out.Anomaly {
				c.logger.Debug("classification tiers disagree",
					zap.String("tx_hash", tx.TxHash),
					zap.String("typename", tx.Typename),
					zap.String("structural", string(structural)),
					zap.String("rule", ruleName),
				)
			}
			return out
		}
		c.logger.Warn("unknown transaction type", zap.String("typename", tx.Typename), zap.String("tx_hash", tx.TxHash))
	}

	if sniffed {
		return Classification{Type: structural, Source: SourceStructural, Structural: structural, Rule: ruleName}
	}

	c.logger.Warn("unrecognized transaction shape, defaulting to supply", zap.String("tx_hash", tx.TxHash))
	return Classification{Type: model.TxSupply, Source: SourceDefault}
}
