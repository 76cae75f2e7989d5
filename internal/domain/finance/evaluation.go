package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WarningLevel is the severity of a spending evaluation. All levels,
// including ERROR, are advisory: the engine classifies, it never authorizes.
type WarningLevel string

const (
	LevelNone    WarningLevel = "NONE"
	LevelInfo    WarningLevel = "INFO"
	LevelWarning WarningLevel = "WARNING"
	LevelError   WarningLevel = "ERROR"
)

// WarningCode identifies the rule that produced the evaluation, so callers
// can switch exhaustively instead of string-matching messages.
type WarningCode string

const (
	CodeUnfunded     WarningCode = "UNFUNDED"
	CodeInsufficient WarningCode = "INSUFFICIENT"
	CodeLowAfter     WarningCode = "LOW_AFTER"
	CodeLowCurrent   WarningCode = "LOW_CURRENT"
)

// Evaluation is the advisory result of checking a proposed spend against a
// project's capital position. It never blocks the operation being evaluated.
type Evaluation struct {
	Level          WarningLevel
	Code           WarningCode
	Message        string
	RemainingAfter decimal.Decimal
}

// EvaluateSpend applies the spending rules in priority order (first match
// wins): UNFUNDED, INSUFFICIENT, LOW_AFTER, LOW_CURRENT, then NONE.
func EvaluateSpend(pos CapitalPosition, amount decimal.Decimal) Evaluation {
	remaining := pos.Balance.Sub(amount)

	if pos.TotalInvested.IsZero() {
		return Evaluation{
			Level:          LevelError,
			Code:           CodeUnfunded,
			Message:        "no capital allocated; cannot approve spending",
			RemainingAfter: remaining,
		}
	}
	if remaining.IsNegative() {
		shortfall := remaining.Neg()
		return Evaluation{
			Level:          LevelError,
			Code:           CodeInsufficient,
			Message:        fmt.Sprintf("proposed spend exceeds available capital by KES %s", shortfall.StringFixed(2)),
			RemainingAfter: remaining,
		}
	}
	if remaining.LessThan(pos.TotalInvested.Mul(lowThresholdPct)) {
		pct := remaining.Div(pos.TotalInvested).Mul(decimal.NewFromInt(100)).Round(1)
		return Evaluation{
			Level:          LevelWarning,
			Code:           CodeLowAfter,
			Message:        fmt.Sprintf("approval would leave KES %s remaining (%s%% of invested capital)", remaining.StringFixed(2), pct.String()),
			RemainingAfter: remaining,
		}
	}
	if pos.Balance.LessThan(pos.TotalInvested.Mul(infoThresholdPct)) {
		return Evaluation{
			Level:          LevelInfo,
			Code:           CodeLowCurrent,
			Message:        "capital balance is already below 20% of invested capital",
			RemainingAfter: remaining,
		}
	}
	return Evaluation{Level: LevelNone, RemainingAfter: remaining}
}
