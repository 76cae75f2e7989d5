package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo append-only AuditLogRepository implementation over
// PostgreSQL. Entries are inserted, never updated or deleted.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository builds the adapter. Pass pool or tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserts one audit entry. The changes map is stored as JSONB.
func (r *AuditLogRepo) Append(e *entity.AuditLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	query := `
		INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, changes, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListByEntity returns the audit trail of one entity, oldest first.
func (r *AuditLogRepo) ListByEntity(entityType, entityID string) ([]entity.AuditLogEntry, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, changes, created_at
		FROM audit_log WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var changes []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &changes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal audit changes: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
