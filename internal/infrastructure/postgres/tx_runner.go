package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/project"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// Ensure TxRunner implements approval.TxRunner and project.TxRunner.
var _ approval.TxRunner = (*TxRunner)(nil)
var _ project.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to that tx
// and commits, or rolls everything back on error. This is the atomic unit of
// every approval-workflow transition.
func (r *TxRunner) Run(ctx context.Context, fn func(
	requestRepo repository.SpendingRequestRepository,
	projectRepo repository.ProjectRepository,
	expenseRepo repository.ExpenseRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requestRepo := NewSpendingRequestRepository(tx)
	projectRepo := NewProjectRepository(tx)
	expenseRepo := NewExpenseRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(requestRepo, projectRepo, expenseRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProject begins a transaction scoped to capital adjustments (project +
// audit repositories).
func (r *TxRunner) RunProject(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	projectRepo := NewProjectRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(projectRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
