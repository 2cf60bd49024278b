package classify

import "lendingScope/internal/model"

// rule is one step of the structural fallback. Rules are evaluated in order
// and the first match wins, since the shapes overlap.
type rule struct {
	name  string
	match func(tx model.RawTransaction) (model.TxType, bool)
}

// structuralRules is used only when no known discriminator is present.
var structuralRules = []rule{
	{name: "liquidation", match: matchLiquidation},
	{name: "collateral", match: matchCollateral},
	{name: "amount", match: matchAmount},
}

func matchLiquidation(tx model.RawTransaction) (model.TxType, bool) {
	if tx.Collateral != nil && tx.DebtRepaid != nil {
		return model.TxLiquidation, true
	}
	return "", false
}

func matchCollateral(tx model.RawTransaction) (model.TxType, bool) {
	if tx.Enabled != nil {
		return model.TxCollateral, true
	}
	return "", false
}

// matchAmount splits amount-carrying shapes. Raw plus usdPerToken is taken as
// a withdrawal and a variable-debt token as borrow-side; both are heuristics.
func matchAmount(tx model.RawTransaction) (model.TxType, bool) {
	if tx.Amount == nil {
		return "", false
	}

	hasRaw := tx.Amount.HasRaw()
	if hasRaw && tx.Amount.USDPerToken != nil {
		return model.TxWithdraw, true
	}

	if tx.Reserve != nil && tx.Reserve.VToken != nil {
		if hasRaw {
			return model.TxRepay, true
		}
		return model.TxBorrow, true
	}

	return model.TxSupply, true
}

// Sniff runs the structural rule chain and returns the matched type and rule
// name. ok is false when no rule matched.
func Sniff(tx model.RawTransaction) (txType model.TxType, ruleName string, ok bool) {
	for _, r := range structuralRules {
		if t, matched := r.match(tx); matched {
			return t, r.name, true
		}
	}
	return "", "", false
}
