package finance

import "github.com/shopspring/decimal"

// Fixed warning thresholds. Changing either changes user-facing warning
// behavior and is a breaking change.
var (
	lowThresholdPct  = decimal.NewFromFloat(0.10) // balance below 10% of invested -> LOW
	infoThresholdPct = decimal.NewFromFloat(0.20) // balance below 20% of invested -> informational note
)

// BalanceStatus classifies a project's current capital position.
type BalanceStatus string

const (
	BalanceOK       BalanceStatus = "OK"
	BalanceLow      BalanceStatus = "LOW"
	BalanceNegative BalanceStatus = "NEGATIVE"
	BalanceUnfunded BalanceStatus = "UNFUNDED"
)

// CapitalPosition is a project's capital figures as read by the ledger.
type CapitalPosition struct {
	Balance       decimal.Decimal
	TotalInvested decimal.Decimal
	TotalUsed     decimal.Decimal
}

// Classify maps a capital position onto a BalanceStatus. The second return
// is an informational note raised when the status is OK but the balance is
// already below 20% of invested capital.
func Classify(balance, totalInvested decimal.Decimal) (BalanceStatus, bool) {
	if totalInvested.IsZero() {
		return BalanceUnfunded, false
	}
	if balance.IsNegative() {
		return BalanceNegative, false
	}
	if balance.LessThan(totalInvested.Mul(lowThresholdPct)) {
		return BalanceLow, false
	}
	if balance.LessThan(totalInvested.Mul(infoThresholdPct)) {
		return BalanceOK, true
	}
	return BalanceOK, false
}
