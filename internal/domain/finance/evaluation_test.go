package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/finance"
)

func position(invested, used float64) finance.CapitalPosition {
	inv := decimal.NewFromFloat(invested)
	u := decimal.NewFromFloat(used)
	return finance.CapitalPosition{
		Balance:       inv.Sub(u),
		TotalInvested: inv,
		TotalUsed:     u,
	}
}

func TestEvaluateSpend_NoWarningWithHealthyBalance(t *testing.T) {
	ev := finance.EvaluateSpend(position(100000, 10000), decimal.NewFromInt(5000))

	assert.Equal(t, finance.LevelNone, ev.Level)
	assert.True(t, ev.RemainingAfter.Equal(decimal.NewFromInt(85000)))
}

func TestEvaluateSpend_UnfundedProjectIsError(t *testing.T) {
	ev := finance.EvaluateSpend(position(0, 0), decimal.NewFromInt(1000))

	assert.Equal(t, finance.LevelError, ev.Level)
	assert.Equal(t, finance.CodeUnfunded, ev.Code)
	assert.Equal(t, "no capital allocated; cannot approve spending", ev.Message)
}

func TestEvaluateSpend_SpendExceedingBalanceIsError(t *testing.T) {
	ev := finance.EvaluateSpend(position(100000, 95000), decimal.NewFromInt(8000))

	assert.Equal(t, finance.LevelError, ev.Level)
	assert.Equal(t, finance.CodeInsufficient, ev.Code)
	assert.Contains(t, ev.Message, "KES 3000.00")
	assert.True(t, ev.RemainingAfter.Equal(decimal.NewFromInt(-3000)))
}

// Invested 100000, used 92000, proposing 5000: the spend fits, but would leave
// 3000 (3% of invested), which is under the 10% threshold.
func TestEvaluateSpend_LowAfterApprovalIsWarning(t *testing.T) {
	ev := finance.EvaluateSpend(position(100000, 92000), decimal.NewFromInt(5000))

	assert.Equal(t, finance.LevelWarning, ev.Level)
	assert.Equal(t, finance.CodeLowAfter, ev.Code)
	assert.Contains(t, ev.Message, "KES 3000.00")
	assert.Contains(t, ev.Message, "3% of invested capital")
}

func TestEvaluateSpend_BalanceAlreadyBelow20PctIsInfo(t *testing.T) {
	// Balance 18%, spend leaves 15%: above the 10% warning band, below 20%.
	ev := finance.EvaluateSpend(position(100000, 82000), decimal.NewFromInt(3000))

	assert.Equal(t, finance.LevelInfo, ev.Level)
	assert.Equal(t, finance.CodeLowCurrent, ev.Code)
}

// Thresholds are exclusive: remaining exactly at 10% of invested is not LOW.
func TestEvaluateSpend_ExactlyTenPercentRemainingIsNotWarning(t *testing.T) {
	ev := finance.EvaluateSpend(position(100000, 80000), decimal.NewFromInt(10000))

	assert.NotEqual(t, finance.LevelWarning, ev.Level)
	assert.True(t, ev.RemainingAfter.Equal(decimal.NewFromInt(10000)))
}

func TestEvaluateSpend_ZeroAmountEvaluatesCurrentPosition(t *testing.T) {
	// Used beyond invested: a zero proposed spend still reports the overdraft.
	ev := finance.EvaluateSpend(position(100000, 105000), decimal.Zero)

	assert.Equal(t, finance.LevelError, ev.Level)
	assert.Equal(t, finance.CodeInsufficient, ev.Code)
	assert.Contains(t, ev.Message, "KES 5000.00")
}

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		name     string
		invested float64
		balance  float64
		want     finance.BalanceStatus
		wantNote bool
	}{
		{"healthy", 100000, 50000, finance.BalanceOK, false},
		{"exactly 20pct no note", 100000, 20000, finance.BalanceOK, false},
		{"below 20pct carries note", 100000, 15000, finance.BalanceOK, true},
		{"exactly 10pct still ok", 100000, 10000, finance.BalanceOK, true},
		{"below 10pct is low", 100000, 9999, finance.BalanceLow, false},
		{"zero balance is low", 100000, 0, finance.BalanceLow, false},
		{"negative", 100000, -1, finance.BalanceNegative, false},
		{"unfunded", 0, 0, finance.BalanceUnfunded, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, note := finance.Classify(decimal.NewFromFloat(tc.balance), decimal.NewFromFloat(tc.invested))
			assert.Equal(t, tc.want, status)
			assert.Equal(t, tc.wantNote, note)
		})
	}
}
