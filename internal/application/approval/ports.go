package approval

import (
	"context"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. Every workflow transition and its
// side effects (expense, capital debit, audit entry) commit or roll back as a
// single unit; a partially applied approval is a correctness defect.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.SpendingRequestRepository,
		projectRepo repository.ProjectRepository,
		expenseRepo repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
