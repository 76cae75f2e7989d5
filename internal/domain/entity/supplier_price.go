package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierPricePoint is one historical unit-cost observation for a
// supplier/material pair. The comparator aggregates these on demand.
type SupplierPricePoint struct {
	ID           string
	SupplierID   string
	SupplierName string
	Material     string
	UnitCost     decimal.Decimal
	RecordedAt   time.Time
}
