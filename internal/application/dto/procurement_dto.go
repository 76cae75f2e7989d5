package dto

import "github.com/shopspring/decimal"

// PriceComparisonRequest body for POST /api/procurement/price-comparison.
type PriceComparisonRequest struct {
	Materials []RequestedMaterialDTO `json:"materials" validate:"required,min=1,dive"`
}

// RequestedMaterialDTO one enquiry line.
type RequestedMaterialDTO struct {
	Material string          `json:"material" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// MaterialEstimateDTO a supplier's estimate for one material.
type MaterialEstimateDTO struct {
	Material           string          `json:"material"`
	RequestedQuantity  decimal.Decimal `json:"requested_quantity"`
	EstimatedUnitCost  decimal.Decimal `json:"estimated_unit_cost"`
	EstimatedTotalCost decimal.Decimal `json:"estimated_total_cost"`
	Confidence         string          `json:"confidence"` // low, medium, high
	DataPoints         int             `json:"data_points"`
	HasData            bool            `json:"has_data"`
}

// SupplierQuoteDTO one supplier's aggregated quote. Rank is 1-based among
// suppliers with historical data; suppliers without data carry rank 0 and are
// excluded from the cheapest pick.
type SupplierQuoteDTO struct {
	SupplierID         string                `json:"supplier_id"`
	SupplierName       string                `json:"supplier_name"`
	Materials          []MaterialEstimateDTO `json:"materials"`
	TotalEstimatedCost decimal.Decimal       `json:"total_estimated_cost"`
	TotalDataPoints    int                   `json:"total_data_points"`
	HasHistoricalData  bool                  `json:"has_historical_data"`
	Rank               int                   `json:"rank,omitempty"`
}

// PriceComparisonResponse output with the ranked quotes and summary.
type PriceComparisonResponse struct {
	Suppliers           []SupplierQuoteDTO `json:"suppliers"`
	CheapestSupplierID  string             `json:"cheapest_supplier_id,omitempty"`
	CheapestSupplier    string             `json:"cheapest_supplier,omitempty"`
	CheapestTotal       decimal.Decimal    `json:"cheapest_total"`
	SuppliersCompared   int                `json:"suppliers_compared"`
	SuppliersWithoutFit int                `json:"suppliers_without_data"`
}

// StockStatusDTO output for one stock item with its classification and
// reorder suggestion.
type StockStatusDTO struct {
	ID                string          `json:"id"`
	Material          string          `json:"material"`
	Unit              string          `json:"unit"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	QuantityDelivered decimal.Decimal `json:"quantity_delivered"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	Status            string          `json:"status"` // PENDING_DELIVERY, DEPLETED, LOW, MODERATE, HEALTHY, NO_STOCK
	RemainingPct      decimal.Decimal `json:"remaining_pct"`
	SuggestedReorder  decimal.Decimal `json:"suggested_reorder_qty"`
}
