package repository

import "github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"

// ExpenseRepository is the port for the immutable expense ledger.
// Create must fail with domain.ErrAlreadyRecorded when an expense for the
// same source request already exists; expenses are never updated or deleted.
type ExpenseRepository interface {
	Create(e *entity.ExpenseRecord) error
	GetBySourceRequestID(requestID string) (*entity.ExpenseRecord, error)
	ListByProject(projectID string) ([]entity.ExpenseRecord, error)
}
