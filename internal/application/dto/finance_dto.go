package dto

import "github.com/shopspring/decimal"

// BalanceResponse output for GET /api/projects/:id/balance.
// Status follows finance.Classify; Note carries the secondary informational
// message when the balance is OK but already below 20% of invested capital.
type BalanceResponse struct {
	ProjectID      string          `json:"project_id"`
	CapitalBalance decimal.Decimal `json:"capital_balance"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalUsed      decimal.Decimal `json:"total_used"`
	Status         string          `json:"status"` // OK, LOW, NEGATIVE, UNFUNDED
	Note           string          `json:"note,omitempty"`
}

// SpendingWarningDTO is the advisory classification attached to evaluate and
// transition responses. It never blocks the operation it describes.
type SpendingWarningDTO struct {
	Level          string          `json:"level"` // NONE, INFO, WARNING, ERROR
	Code           string          `json:"code,omitempty"`
	Message        string          `json:"message,omitempty"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
}
