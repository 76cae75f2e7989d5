package entity

import "github.com/shopspring/decimal"

// StockItem is a read model of a project's material stock position. This
// engine only classifies it and suggests reorder quantities; it never writes.
type StockItem struct {
	ID                string
	ProjectID         string
	Material          string
	Unit              string
	QuantityPurchased decimal.Decimal
	QuantityDelivered decimal.Decimal
	QuantityRemaining decimal.Decimal
}
