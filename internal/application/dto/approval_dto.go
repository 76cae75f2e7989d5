package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitSpendingRequest body for POST /api/requests.
type SubmitSpendingRequest struct {
	ProjectID    string          `json:"project_id" validate:"required,uuid"`
	Kind         string          `json:"kind" validate:"required,oneof=material_request professional_fee"`
	Description  string          `json:"description" validate:"omitempty,max=500"`
	SupplierName string          `json:"supplier_name" validate:"omitempty,max=200"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
}

// ApproveRequest body for POST /api/requests/:id/approve.
type ApproveRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RejectRequest body for POST /api/requests/:id/reject.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RecordPaymentRequest body for POST /api/requests/:id/payment.
type RecordPaymentRequest struct {
	Method    string     `json:"method" validate:"required"`
	Date      *time.Time `json:"date" validate:"required"`
	Reference string     `json:"reference,omitempty"`
}

// SpendingRequestResponse output for a spending request.
type SpendingRequestResponse struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	Kind            string          `json:"kind"`
	Description     string          `json:"description,omitempty"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	RequestedBy     string          `json:"requested_by"`
	ApprovedBy      string          `json:"approved_by,omitempty"`
	ApprovalNotes   string          `json:"approval_notes,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	PaymentRef      string          `json:"payment_reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ExpenseResponse output for an expense ledger entry.
type ExpenseResponse struct {
	ID              string          `json:"id"`
	SourceRequestID string          `json:"source_request_id"`
	ProjectID       string          `json:"project_id"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AuditEntryResponse one audit trail entry.
type AuditEntryResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TransitionResponse wraps a successful workflow transition. Warning is the
// advisory capital evaluation (always present on submit/approve, may be NONE);
// Expense is set only on approval.
type TransitionResponse struct {
	Request SpendingRequestResponse `json:"request"`
	Warning *SpendingWarningDTO     `json:"warning,omitempty"`
	Expense *ExpenseResponse        `json:"expense,omitempty"`
}
