package approval

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appfinance "github.com/Victorkib/kisheka-construction-sub011/internal/application/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
	"github.com/Victorkib/kisheka-construction-sub011/pkg/logger"
)

// WorkflowUseCase owns every status transition of a spending request:
// submit -> approve/reject -> pay/archive. Approval is the capital-commitment
// event: it writes the expense record and debits the project's used capital
// in the same transaction as the status flip, serialized per project by a
// row lock on the project.
type WorkflowUseCase struct {
	txRunner    TxRunner
	requestRepo repository.SpendingRequestRepository
	projectRepo repository.ProjectRepository
	auditRepo   repository.AuditLogRepository
	log         *logger.Logger
}

// NewWorkflowUseCase builds the approval workflow.
func NewWorkflowUseCase(
	txRunner TxRunner,
	requestRepo repository.SpendingRequestRepository,
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditLogRepository,
	log *logger.Logger,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		log:         log,
	}
}

// Submit creates a spending request in PENDING. No capital is touched; the
// attached warning is the advisory evaluation of the proposed amount against
// the project's current balance.
func (uc *WorkflowUseCase) Submit(ctx context.Context, userID string, in dto.SubmitSpendingRequest) (*dto.TransitionResponse, error) {
	if in.Kind != entity.RequestKindMaterial && in.Kind != entity.RequestKindProfessionalFee {
		return nil, domain.ErrValidation
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	request := &entity.SpendingRequest{
		ID:           uuid.New().String(),
		ProjectID:    in.ProjectID,
		Kind:         in.Kind,
		Description:  in.Description,
		SupplierName: in.SupplierName,
		Amount:       in.Amount,
		Status:       entity.StatusPending,
		RequestedBy:  userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.SpendingRequestRepository,
		_ repository.ProjectRepository,
		_ repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := requestRepo.Create(request); err != nil {
			return err
		}
		return auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     entity.AuditActionSubmitted,
			EntityType: "spending_request",
			EntityID:   request.ID,
			Changes: map[string]any{
				"after": map[string]any{
					"status": entity.StatusPending,
					"kind":   request.Kind,
					"amount": request.Amount.String(),
				},
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	ev := finance.EvaluateSpend(positionOf(project), in.Amount)
	return &dto.TransitionResponse{
		Request: toRequestResponse(request),
		Warning: appfinance.WarningDTO(ev),
	}, nil
}

// Approve flips a PENDING request to APPROVED and, atomically with it:
// records exactly one expense, debits the project's used capital (the balance
// is recomputed in the same statement) and appends one audit entry. The
// response carries a fresh evaluation of the post-approval balance so callers
// can surface "approved, but capital now negative".
func (uc *WorkflowUseCase) Approve(ctx context.Context, requestID, approverID, notes string) (*dto.TransitionResponse, error) {
	var resp *dto.TransitionResponse

	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.SpendingRequestRepository,
		projectRepo repository.ProjectRepository,
		expenseRepo repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.Status != entity.StatusPending {
			return domain.ErrInvalidTransition
		}
		// Project row lock: serializes concurrent approvals per project so
		// both cannot debit against the same stale balance.
		project, err := projectRepo.GetForUpdate(request.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		before := request.Status
		request.Status = entity.StatusApproved
		request.ApprovedBy = approverID
		request.ApprovalNotes = notes
		request.UpdatedAt = now
		if err := requestRepo.Update(request); err != nil {
			return err
		}

		// Exactly one expense per request. The lookup runs before the insert:
		// a failed INSERT would abort the whole transaction on Postgres, so
		// recovering from the unique index after the fact is not possible.
		// The request and project row locks held here make lookup-then-insert
		// race free; the unique index stays as the backstop.
		expense, err := expenseRepo.GetBySourceRequestID(request.ID)
		if err != nil {
			return err
		}
		if expense != nil {
			// Idempotent replay: reuse the existing record, warn operators,
			// never double-count against capital.
			uc.log.Warn().
				Str("request_id", request.ID).
				Str("expense_id", expense.ID).
				Msg("duplicate expense attempt treated as idempotent")
		} else {
			expense = &entity.ExpenseRecord{
				ID:              uuid.New().String(),
				SourceRequestID: request.ID,
				ProjectID:       request.ProjectID,
				Amount:          request.Amount,
				CreatedAt:       now,
			}
			if err := expenseRepo.Create(expense); err != nil {
				return err
			}
		}

		project.TotalUsedCapital = project.TotalUsedCapital.Add(request.Amount)
		project.CapitalBalance = project.TotalInvestedCapital.Sub(project.TotalUsedCapital)
		project.UpdatedAt = now
		if err := projectRepo.UpdateCapital(project); err != nil {
			return err
		}

		if err := auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     approverID,
			Action:     entity.AuditActionApproved,
			EntityType: "spending_request",
			EntityID:   request.ID,
			Changes: map[string]any{
				"before": map[string]any{"status": before},
				"after": map[string]any{
					"status":             entity.StatusApproved,
					"approval_notes":     notes,
					"amount":             request.Amount.String(),
					"total_used_capital": project.TotalUsedCapital.String(),
					"capital_balance":    project.CapitalBalance.String(),
				},
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}

		// Re-evaluate against the balance this transaction just wrote, with a
		// zero proposed amount: the warning describes the post-approval state.
		ev := finance.EvaluateSpend(positionOf(project), decimal.Zero)
		resp = &dto.TransitionResponse{
			Request: toRequestResponse(request),
			Warning: appfinance.WarningDTO(ev),
			Expense: toExpenseResponse(expense),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Warning != nil && resp.Warning.Level == string(finance.LevelError) {
		uc.log.Warn().
			Str("request_id", requestID).
			Str("warning", resp.Warning.Message).
			Msg("request approved with capital warning")
	}
	return resp, nil
}

// Reject flips a PENDING request to REJECTED. The reason is mandatory and
// may not be blank. No financial effect.
func (uc *WorkflowUseCase) Reject(ctx context.Context, requestID, rejecterID, reason string) (*dto.TransitionResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrValidation
	}
	var resp *dto.TransitionResponse

	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.SpendingRequestRepository,
		_ repository.ProjectRepository,
		_ repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.Status != entity.StatusPending {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		before := request.Status
		request.Status = entity.StatusRejected
		request.RejectionReason = reason
		request.UpdatedAt = now
		if err := requestRepo.Update(request); err != nil {
			return err
		}
		if err := auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     rejecterID,
			Action:     entity.AuditActionRejected,
			EntityType: "spending_request",
			EntityID:   request.ID,
			Changes: map[string]any{
				"before": map[string]any{"status": before},
				"after": map[string]any{
					"status":           entity.StatusRejected,
					"rejection_reason": reason,
				},
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		resp = &dto.TransitionResponse{Request: toRequestResponse(request)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RecordPayment flips an APPROVED request to PAID. Capital was already
// debited at approval, so payment has no additional capital effect.
func (uc *WorkflowUseCase) RecordPayment(ctx context.Context, requestID, userID string, in dto.RecordPaymentRequest) (*dto.TransitionResponse, error) {
	if in.Date == nil || strings.TrimSpace(in.Method) == "" {
		return nil, domain.ErrValidation
	}
	var resp *dto.TransitionResponse

	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.SpendingRequestRepository,
		_ repository.ProjectRepository,
		_ repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.Status != entity.StatusApproved {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		before := request.Status
		request.Status = entity.StatusPaid
		request.Payment = entity.PaymentInfo{
			Method:    in.Method,
			Date:      in.Date,
			Reference: in.Reference,
		}
		request.UpdatedAt = now
		if err := requestRepo.Update(request); err != nil {
			return err
		}
		if err := auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     entity.AuditActionPaid,
			EntityType: "spending_request",
			EntityID:   request.ID,
			Changes: map[string]any{
				"before": map[string]any{"status": before},
				"after": map[string]any{
					"status":            entity.StatusPaid,
					"payment_method":    in.Method,
					"payment_date":      in.Date.Format(time.RFC3339),
					"payment_reference": in.Reference,
				},
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		resp = &dto.TransitionResponse{Request: toRequestResponse(request)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Archive retires an APPROVED request without paying it. Terminal, audited,
// no capital effect.
func (uc *WorkflowUseCase) Archive(ctx context.Context, requestID, userID string) (*dto.TransitionResponse, error) {
	var resp *dto.TransitionResponse

	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.SpendingRequestRepository,
		_ repository.ProjectRepository,
		_ repository.ExpenseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.Status != entity.StatusApproved {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		before := request.Status
		request.Status = entity.StatusArchived
		request.UpdatedAt = now
		if err := requestRepo.Update(request); err != nil {
			return err
		}
		if err := auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     entity.AuditActionArchived,
			EntityType: "spending_request",
			EntityID:   request.ID,
			Changes: map[string]any{
				"before": map[string]any{"status": before},
				"after":  map[string]any{"status": entity.StatusArchived},
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		resp = &dto.TransitionResponse{Request: toRequestResponse(request)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID returns one spending request.
func (uc *WorkflowUseCase) GetByID(ctx context.Context, requestID string) (*dto.SpendingRequestResponse, error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	resp := toRequestResponse(request)
	return &resp, nil
}

// ListByProject returns a project's requests, optionally filtered by status.
func (uc *WorkflowUseCase) ListByProject(ctx context.Context, projectID, status string) ([]dto.SpendingRequestResponse, error) {
	requests, err := uc.requestRepo.ListByProject(projectID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpendingRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, toRequestResponse(&requests[i]))
	}
	return out, nil
}

// AuditTrail returns a request's audit entries, oldest first.
func (uc *WorkflowUseCase) AuditTrail(ctx context.Context, requestID string) ([]dto.AuditEntryResponse, error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.auditRepo.ListByEntity("spending_request", requestID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Changes:    e.Changes,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}

func positionOf(p *entity.Project) finance.CapitalPosition {
	return finance.CapitalPosition{
		Balance:       p.CapitalBalance,
		TotalInvested: p.TotalInvestedCapital,
		TotalUsed:     p.TotalUsedCapital,
	}
}

func toRequestResponse(r *entity.SpendingRequest) dto.SpendingRequestResponse {
	return dto.SpendingRequestResponse{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		Kind:            r.Kind,
		Description:     r.Description,
		SupplierName:    r.SupplierName,
		Amount:          r.Amount,
		Status:          r.Status,
		RequestedBy:     r.RequestedBy,
		ApprovedBy:      r.ApprovedBy,
		ApprovalNotes:   r.ApprovalNotes,
		RejectionReason: r.RejectionReason,
		PaymentMethod:   r.Payment.Method,
		PaymentDate:     r.Payment.Date,
		PaymentRef:      r.Payment.Reference,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toExpenseResponse(e *entity.ExpenseRecord) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:              e.ID,
		SourceRequestID: e.SourceRequestID,
		ProjectID:       e.ProjectID,
		Amount:          e.Amount,
		CreatedAt:       e.CreatedAt,
	}
}
