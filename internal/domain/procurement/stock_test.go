package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/procurement"
)

func item(purchased, delivered, remaining float64) entity.StockItem {
	return entity.StockItem{
		Material:          "cement",
		Unit:              "bags",
		QuantityPurchased: decimal.NewFromFloat(purchased),
		QuantityDelivered: decimal.NewFromFloat(delivered),
		QuantityRemaining: decimal.NewFromFloat(remaining),
	}
}

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name                           string
		purchased, delivered, remaining float64
		want                           procurement.StockStatus
		wantPct                        float64
	}{
		{"purchased but not delivered", 100, 0, 0, procurement.StockPendingDelivery, 0},
		{"fully consumed", 100, 100, 0, procurement.StockDepleted, 0},
		{"15pct remaining is low", 100, 100, 15, procurement.StockLow, 15},
		{"just under 20pct is low", 100, 100, 19.99, procurement.StockLow, 19.99},
		{"exactly 20pct is moderate", 100, 100, 20, procurement.StockModerate, 20},
		{"49pct is moderate", 100, 100, 49, procurement.StockModerate, 49},
		{"exactly 50pct is healthy", 100, 100, 50, procurement.StockHealthy, 50},
		{"full is healthy", 100, 100, 100, procurement.StockHealthy, 100},
		{"partial delivery uses delivered as base", 200, 100, 10, procurement.StockLow, 10},
		{"nothing purchased or delivered", 0, 0, 0, procurement.StockNone, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, pct := procurement.ClassifyStock(item(tc.purchased, tc.delivered, tc.remaining))
			assert.Equal(t, tc.want, status)
			assert.True(t, pct.Equal(decimal.NewFromFloat(tc.wantPct)),
				"pct = %s, want %v", pct, tc.wantPct)
		})
	}
}

func TestSuggestReorderQuantity(t *testing.T) {
	cases := []struct {
		name                           string
		purchased, delivered, remaining float64
		want                           int64
	}{
		// Undelivered: re-suggest the full purchased quantity.
		{"pending delivery", 100, 0, 0, 100},
		// Depleted: deficit 100 beats the 50-unit floor.
		{"depleted", 100, 100, 0, 100},
		// 15 remaining: deficit 85 > 50.
		{"low stock", 100, 100, 15, 85},
		// 80 remaining: deficit 20 < 50 floor.
		{"healthy stock floors at half the base", 100, 100, 80, 50},
		// Fractional result rounds up.
		{"ceil of fractional suggestion", 75, 75, 70, 38},
		// Deficit 60.5 -> ceil 61.
		{"ceil of fractional deficit", 100, 100, 39.5, 61},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := procurement.SuggestReorderQuantity(item(tc.purchased, tc.delivered, tc.remaining))
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"suggested = %s, want %d", got, tc.want)
		})
	}
}
