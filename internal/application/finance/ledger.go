package finance

import (
	"context"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// LedgerUseCase exposes a project's capital position and expense ledger. It
// is the single read path for capital figures so every validator and screen
// sees the same numbers.
type LedgerUseCase struct {
	projectRepo repository.ProjectRepository
	expenseRepo repository.ExpenseRepository
}

// NewLedgerUseCase builds the ledger use case.
func NewLedgerUseCase(projectRepo repository.ProjectRepository, expenseRepo repository.ExpenseRepository) *LedgerUseCase {
	return &LedgerUseCase{projectRepo: projectRepo, expenseRepo: expenseRepo}
}

// GetBalance returns the capital balance, totals and threshold classification
// for a project.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, projectID string) (*dto.BalanceResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	status, note := finance.Classify(project.CapitalBalance, project.TotalInvestedCapital)
	resp := &dto.BalanceResponse{
		ProjectID:      project.ID,
		CapitalBalance: project.CapitalBalance,
		TotalInvested:  project.TotalInvestedCapital,
		TotalUsed:      project.TotalUsedCapital,
		Status:         string(status),
	}
	if note {
		resp.Note = "capital balance is below 20% of invested capital"
	}
	return resp, nil
}

// ListExpenses returns a project's expense ledger entries, newest first.
func (uc *LedgerUseCase) ListExpenses(ctx context.Context, projectID string) ([]dto.ExpenseResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	expenses, err := uc.expenseRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.ExpenseResponse{
			ID:              e.ID,
			SourceRequestID: e.SourceRequestID,
			ProjectID:       e.ProjectID,
			Amount:          e.Amount,
			CreatedAt:       e.CreatedAt,
		})
	}
	return out, nil
}
