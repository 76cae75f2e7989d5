package finance

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// ValidatorUseCase evaluates a proposed spend against a project's capital.
// It only classifies; it never blocks the operation being evaluated. The
// caller decides whether to require explicit confirmation.
type ValidatorUseCase struct {
	projectRepo repository.ProjectRepository
}

// NewValidatorUseCase builds the spending validator.
func NewValidatorUseCase(projectRepo repository.ProjectRepository) *ValidatorUseCase {
	return &ValidatorUseCase{projectRepo: projectRepo}
}

// Evaluate classifies a proposed spend. Amounts must be non-negative.
func (uc *ValidatorUseCase) Evaluate(ctx context.Context, projectID string, amount decimal.Decimal) (*dto.SpendingWarningDTO, error) {
	if amount.IsNegative() {
		return nil, domain.ErrValidation
	}
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	ev := finance.EvaluateSpend(finance.CapitalPosition{
		Balance:       project.CapitalBalance,
		TotalInvested: project.TotalInvestedCapital,
		TotalUsed:     project.TotalUsedCapital,
	}, amount)
	return WarningDTO(ev), nil
}

// WarningDTO maps a domain evaluation onto its transport shape. Shared with
// the approval workflow, which re-evaluates inside its transaction.
func WarningDTO(ev finance.Evaluation) *dto.SpendingWarningDTO {
	return &dto.SpendingWarningDTO{
		Level:          string(ev.Level),
		Code:           string(ev.Code),
		Message:        ev.Message,
		RemainingAfter: ev.RemainingAfter,
	}
}
