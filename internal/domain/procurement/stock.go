package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

// Stock level classifications.
type StockStatus string

const (
	StockPendingDelivery StockStatus = "PENDING_DELIVERY"
	StockDepleted        StockStatus = "DEPLETED"
	StockLow             StockStatus = "LOW"
	StockModerate        StockStatus = "MODERATE"
	StockHealthy         StockStatus = "HEALTHY"
	StockNone            StockStatus = "NO_STOCK"
)

// Classification band edges (percentage of delivered quantity remaining).
var (
	lowBand      = decimal.NewFromInt(20)
	moderateBand = decimal.NewFromInt(50)
	hundred      = decimal.NewFromInt(100)
	half         = decimal.NewFromFloat(0.5)
)

// ClassifyStock returns the stock status and the remaining percentage of the
// delivered quantity. Items purchased but not yet delivered are
// PENDING_DELIVERY regardless of how little remains on site.
func ClassifyStock(item entity.StockItem) (StockStatus, decimal.Decimal) {
	if item.QuantityDelivered.IsZero() && item.QuantityPurchased.IsPositive() {
		return StockPendingDelivery, decimal.Zero
	}
	if item.QuantityDelivered.IsPositive() {
		pct := item.QuantityRemaining.Div(item.QuantityDelivered).Mul(hundred)
		switch {
		case pct.IsZero():
			return StockDepleted, pct
		case pct.LessThan(lowBand):
			return StockLow, pct
		case pct.LessThan(moderateBand):
			return StockModerate, pct
		default:
			return StockHealthy, pct
		}
	}
	return StockNone, decimal.Zero
}

// SuggestReorderQuantity recommends a reorder amount. Undelivered items get
// the full purchased quantity re-suggested; delivered items are topped back
// up toward 50% of the delivered (or purchased) base:
//
//	suggested = ceil(max(base * 0.5, base - remaining))
//
// This is a heuristic, not an optimization; the formula is frozen.
func SuggestReorderQuantity(item entity.StockItem) decimal.Decimal {
	if item.QuantityDelivered.IsZero() {
		return item.QuantityPurchased
	}
	base := item.QuantityDelivered
	if base.IsZero() {
		base = item.QuantityPurchased
	}
	target := base.Mul(half)
	deficit := base.Sub(item.QuantityRemaining)
	suggested := target
	if deficit.GreaterThan(suggested) {
		suggested = deficit
	}
	return suggested.Ceil()
}
