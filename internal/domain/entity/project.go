package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a construction project with its capital position.
// CapitalBalance is derived (invested - used) and is recomputed in the same
// transaction as any change to TotalUsedCapital. It may legitimately go
// negative; the engine only warns.
type Project struct {
	ID                   string
	Name                 string
	TotalInvestedCapital decimal.Decimal // cumulative capital raised, KES
	TotalUsedCapital     decimal.Decimal // cumulative capital committed by approvals
	CapitalBalance       decimal.Decimal // invested - used
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
