package repository

import "github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"

// AuditLogRepository is the append-only port for traceability records.
type AuditLogRepository interface {
	Append(e *entity.AuditLogEntry) error
	ListByEntity(entityType, entityID string) ([]entity.AuditLogEntry, error)
}
