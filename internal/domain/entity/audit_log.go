package entity

import "time"

// Audit actions recorded by the approval engine.
const (
	AuditActionSubmitted      = "SUBMITTED"
	AuditActionApproved       = "APPROVED"
	AuditActionRejected       = "REJECTED"
	AuditActionPaid           = "PAID"
	AuditActionArchived       = "ARCHIVED"
	AuditActionCapitalAdded   = "CAPITAL_ADDED"
	AuditActionProjectCreated = "PROJECT_CREATED"
)

// AuditLogEntry is an append-only record of who did what. Changes holds a
// before/after snapshot rich enough to reconstruct approval notes, rejection
// reasons or payment info without diffing entity rows.
type AuditLogEntry struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Changes    map[string]any
	CreatedAt  time.Time
}
