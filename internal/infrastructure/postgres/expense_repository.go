package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo ExpenseRepository implementation over PostgreSQL. The
// expenses table carries a unique index on source_request_id; the database
// is what guarantees exactly one expense per approved request.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository builds the adapter. Pass pool or tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persists an expense. A duplicate source request fails with
// domain.ErrAlreadyRecorded; expenses are never updated or deleted.
func (r *ExpenseRepo) Create(e *entity.ExpenseRecord) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO expenses (id, source_request_id, project_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.SourceRequestID, e.ProjectID, e.Amount, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRecorded
		}
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// GetBySourceRequestID fetches the expense created for a request. Returns
// (nil, nil) when absent.
func (r *ExpenseRepo) GetBySourceRequestID(requestID string) (*entity.ExpenseRecord, error) {
	query := `
		SELECT id, source_request_id, project_id, amount, created_at
		FROM expenses WHERE source_request_id = $1`
	var e entity.ExpenseRecord
	err := r.q.QueryRow(context.Background(), query, requestID).Scan(
		&e.ID, &e.SourceRequestID, &e.ProjectID, &e.Amount, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// ListByProject returns a project's expenses, newest first.
func (r *ExpenseRepo) ListByProject(projectID string) ([]entity.ExpenseRecord, error) {
	query := `
		SELECT id, source_request_id, project_id, amount, created_at
		FROM expenses WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []entity.ExpenseRecord
	for rows.Next() {
		var e entity.ExpenseRecord
		if err := rows.Scan(&e.ID, &e.SourceRequestID, &e.ProjectID, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
