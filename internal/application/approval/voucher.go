package approval

import (
	"context"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// VoucherPDFGenerator renders a payment voucher document for a paid request.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, request *entity.SpendingRequest, project *entity.Project, expense *entity.ExpenseRecord) ([]byte, error)
}

// VoucherUseCase produces the printable payment voucher for a PAID request.
type VoucherUseCase struct {
	requestRepo repository.SpendingRequestRepository
	projectRepo repository.ProjectRepository
	expenseRepo repository.ExpenseRepository
	generator   VoucherPDFGenerator
}

// NewVoucherUseCase builds the voucher use case.
func NewVoucherUseCase(
	requestRepo repository.SpendingRequestRepository,
	projectRepo repository.ProjectRepository,
	expenseRepo repository.ExpenseRepository,
	generator VoucherPDFGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{
		requestRepo: requestRepo,
		projectRepo: projectRepo,
		expenseRepo: expenseRepo,
		generator:   generator,
	}
}

// GenerateVoucher returns the voucher PDF bytes. Only PAID requests have a
// voucher; any other status fails with ErrInvalidTransition.
func (uc *VoucherUseCase) GenerateVoucher(ctx context.Context, requestID string) ([]byte, error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if request.Status != entity.StatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	project, err := uc.projectRepo.GetByID(request.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	expense, err := uc.expenseRepo.GetBySourceRequestID(request.ID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateVoucherPDF(ctx, request, project, expense)
}
