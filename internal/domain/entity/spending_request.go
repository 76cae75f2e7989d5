package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spending request kinds.
const (
	RequestKindMaterial        = "material_request"
	RequestKindProfessionalFee = "professional_fee"
)

// Spending request statuses. REJECTED and ARCHIVED are terminal; PAID is
// terminal for financial purposes but the record stays queryable.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusPaid     = "PAID"
	StatusArchived = "ARCHIVED"
)

// PaymentInfo is set only when a request transitions to PAID.
type PaymentInfo struct {
	Method    string
	Date      *time.Time
	Reference string
}

// SpendingRequest is a material request or professional fee going through
// the approval lifecycle. Transitions are owned exclusively by the approval
// workflow.
type SpendingRequest struct {
	ID              string
	ProjectID       string
	Kind            string // material_request, professional_fee
	Description     string
	SupplierName    string // payee: supplier or professional
	Amount          decimal.Decimal
	Status          string
	RequestedBy     string
	ApprovedBy      string
	ApprovalNotes   string // set only on approval
	RejectionReason string // set only on rejection, never empty there
	Payment         PaymentInfo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
