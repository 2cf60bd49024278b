package history

import (
	"strconv"

	"go.uber.org/zap"

	"lendingScope/internal/classify"
	"lendingScope/internal/format"
	"lendingScope/internal/metrics"
	"lendingScope/internal/model"
)

const unknownChain = "Unknown"

// Normalizer reshapes raw transactions into display records.
type Normalizer struct {
	classifier *classify.Classifier
	metrics    *metrics.Metrics
}

func NewNormalizer(logger *zap.Logger, m *metrics.Metrics) *Normalizer {
	return &Normalizer{
		classifier: classify.New(logger),
		metrics:    m,
	}
}

// Normalize converts tx into its display record. index is the position of tx
// in the ordered output and makes the id unique when a hash repeats.
func (n *Normalizer) Normalize(tx model.RawTransaction, index int) model.NormalizedTransaction {
	verdict := n.classifier.Inspect(tx)
	n.metrics.RecordNormalized(string(verdict.Type), string(verdict.Source))
	if verdict.Anomaly {
		n.metrics.RecordAnomaly(string(verdict.Type), string(verdict.Structural))
	}

	out := model.NormalizedTransaction{
		ID:               tx.TxHash + "-" + strconv.Itoa(index),
		Type:             verdict.Type,
		Timestamp:        format.FormatTimestamp(tx.Timestamp),
		TxHash:           tx.TxHash,
		BlockExplorerURL: tx.BlockExplorerURL,
	}

	switch verdict.Type {
	case model.TxCollateral:
		applyReserve(&out, tx.Reserve)
		if tx.Enabled != nil {
			enabled := *tx.Enabled
			out.Enabled = &enabled
		}
	case model.TxLiquidation:
		var leg model.LiquidationLeg
		if tx.Collateral != nil {
			leg = *tx.Collateral
		}
		applyReserve(&out, leg.Reserve)
		applyAmount(&out, leg.Amount)
	default:
		applyReserve(&out, tx.Reserve)
		applyAmount(&out, tx.Amount)
	}

	return out
}

func applyReserve(out *model.NormalizedTransaction, reserve *model.Reserve) {
	out.ChainName = unknownChain
	if reserve == nil {
		return
	}
	if token := reserve.UnderlyingToken; token != nil {
		out.TokenSymbol = token.Symbol
		out.TokenImageURL = token.ImageURL
	}
	market := reserve.Market
	if market == nil {
		return
	}
	out.MarketName = market.Name
	out.MarketIcon = market.Icon
	if market.Chain != nil {
		if market.Chain.Name != "" {
			out.ChainName = market.Chain.Name
		}
		out.ChainIcon = market.Chain.Icon
	}
}

func applyAmount(out *model.NormalizedTransaction, amount *model.USDAmount) {
	var value, usd any
	if amount != nil {
		usd = amount.USD
		if amount.Amount != nil {
			value = amount.Amount.Value
		}
	}
	formatted := format.FormatNumber(value)
	formattedUSD := format.FormatUSD(usd)
	out.Amount = &formatted
	out.USDAmount = &formattedUSD
}
