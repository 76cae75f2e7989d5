package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord is the immutable ledger entry created exactly once when a
// spending request is approved. The unique constraint on SourceRequestID is
// what makes approval idempotent with respect to capital.
type ExpenseRecord struct {
	ID              string
	SourceRequestID string
	ProjectID       string
	Amount          decimal.Decimal
	CreatedAt       time.Time
}
