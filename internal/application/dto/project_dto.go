package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest body for POST /api/projects.
type CreateProjectRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	InvestedCapital decimal.Decimal `json:"invested_capital" validate:"omitempty"`
}

// AddCapitalRequest body for POST /api/projects/:id/capital.
type AddCapitalRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Notes  string          `json:"notes,omitempty"`
}

// ProjectResponse project output including its capital position.
type ProjectResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	TotalInvestedCapital decimal.Decimal `json:"total_invested_capital"`
	TotalUsedCapital     decimal.Decimal `json:"total_used_capital"`
	CapitalBalance       decimal.Decimal `json:"capital_balance"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
