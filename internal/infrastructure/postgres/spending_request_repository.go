package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

var _ repository.SpendingRequestRepository = (*SpendingRequestRepo)(nil)

// SpendingRequestRepo SpendingRequestRepository implementation over
// PostgreSQL (usable with pool or tx).
type SpendingRequestRepo struct {
	q Querier
}

// NewSpendingRequestRepository builds the adapter. Pass pool or tx (Querier).
func NewSpendingRequestRepository(q Querier) *SpendingRequestRepo {
	return &SpendingRequestRepo{q: q}
}

const requestColumns = `id, project_id, kind, description, supplier_name, amount, status,
	requested_by, approved_by, approval_notes, rejection_reason,
	payment_method, payment_date, payment_reference, created_at, updated_at`

// Create persists a new spending request.
func (r *SpendingRequestRepo) Create(req *entity.SpendingRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO spending_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ProjectID, req.Kind, req.Description, req.SupplierName, req.Amount, req.Status,
		req.RequestedBy, nullable(req.ApprovedBy), nullable(req.ApprovalNotes), nullable(req.RejectionReason),
		nullable(req.Payment.Method), req.Payment.Date, nullable(req.Payment.Reference), req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create spending request: %w", err)
	}
	return nil
}

// GetByID fetches a request by id. Returns (nil, nil) when absent.
func (r *SpendingRequestRepo) GetByID(id string) (*entity.SpendingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM spending_requests WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate fetches a request and locks its row so concurrent transitions
// on the same request serialize.
func (r *SpendingRequestRepo) GetForUpdate(id string) (*entity.SpendingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM spending_requests WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persists the mutable transition fields of a request.
func (r *SpendingRequestRepo) Update(req *entity.SpendingRequest) error {
	query := `
		UPDATE spending_requests
		SET status = $2, approved_by = $3, approval_notes = $4, rejection_reason = $5,
		    payment_method = $6, payment_date = $7, payment_reference = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, nullable(req.ApprovedBy), nullable(req.ApprovalNotes), nullable(req.RejectionReason),
		nullable(req.Payment.Method), req.Payment.Date, nullable(req.Payment.Reference), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update spending request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update spending request: request %s not found", req.ID)
	}
	return nil
}

// ListByProject returns a project's requests, optionally filtered by status,
// newest first.
func (r *SpendingRequestRepo) ListByProject(projectID, status string) ([]entity.SpendingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM spending_requests WHERE project_id = $1`
	args := []any{projectID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spending requests: %w", err)
	}
	defer rows.Close()

	var out []entity.SpendingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *SpendingRequestRepo) scanOne(row pgx.Row) (*entity.SpendingRequest, error) {
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spending request: %w", err)
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*entity.SpendingRequest, error) {
	var req entity.SpendingRequest
	var approvedBy, approvalNotes, rejectionReason, paymentMethod, paymentRef *string
	err := row.Scan(
		&req.ID, &req.ProjectID, &req.Kind, &req.Description, &req.SupplierName, &req.Amount, &req.Status,
		&req.RequestedBy, &approvedBy, &approvalNotes, &rejectionReason,
		&paymentMethod, &req.Payment.Date, &paymentRef, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.ApprovedBy = deref(approvedBy)
	req.ApprovalNotes = deref(approvalNotes)
	req.RejectionReason = deref(rejectionReason)
	req.Payment.Method = deref(paymentMethod)
	req.Payment.Reference = deref(paymentRef)
	return &req, nil
}
