package approval_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
	"github.com/Victorkib/kisheka-construction-sub011/pkg/logger"
)

// store is a threadsafe in-memory database shared by the fake repositories.
// aborted mimics Postgres: once a statement fails inside a transaction,
// every later statement in that transaction fails too.
type store struct {
	mu       sync.Mutex
	projects map[string]entity.Project
	requests map[string]entity.SpendingRequest
	expenses map[string]entity.ExpenseRecord // keyed by source request id
	audit    []entity.AuditLogEntry
	aborted  bool
}

func newStore() *store {
	return &store{
		projects: make(map[string]entity.Project),
		requests: make(map[string]entity.SpendingRequest),
		expenses: make(map[string]entity.ExpenseRecord),
	}
}

func (s *store) snapshot() *store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := newStore()
	for k, v := range s.projects {
		snap.projects[k] = v
	}
	for k, v := range s.requests {
		snap.requests[k] = v
	}
	for k, v := range s.expenses {
		snap.expenses[k] = v
	}
	snap.audit = append(snap.audit, s.audit...)
	return snap
}

func (s *store) restore(snap *store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = snap.projects
	s.requests = snap.requests
	s.expenses = snap.expenses
	s.audit = snap.audit
}

type fakeProjectRepo struct{ s *store }

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = *p
	return nil
}

func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProjectRepo) GetForUpdate(id string) (*entity.Project, error) {
	return r.GetByID(id)
}

func (r *fakeProjectRepo) List() ([]entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) UpdateCapital(p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = *p
	return nil
}

type fakeRequestRepo struct{ s *store }

func (r *fakeRequestRepo) Create(req *entity.SpendingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.SpendingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *fakeRequestRepo) GetForUpdate(id string) (*entity.SpendingRequest, error) {
	return r.GetByID(id)
}

func (r *fakeRequestRepo) Update(req *entity.SpendingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) ListByProject(projectID, status string) ([]entity.SpendingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.SpendingRequest, 0)
	for _, req := range r.s.requests {
		if req.ProjectID == projectID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, nil
}

// fakeExpenseRepo enforces the one-expense-per-request invariant the real
// adapter gets from the unique index, including the abort that a unique
// violation leaves behind: once Create fails, later reads in the same
// transaction fail as well.
type fakeExpenseRepo struct{ s *store }

var errTxAborted = errors.New("current transaction is aborted")

func (r *fakeExpenseRepo) Create(e *entity.ExpenseRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.aborted {
		return errTxAborted
	}
	if _, exists := r.s.expenses[e.SourceRequestID]; exists {
		r.s.aborted = true
		return domain.ErrAlreadyRecorded
	}
	r.s.expenses[e.SourceRequestID] = *e
	return nil
}

func (r *fakeExpenseRepo) GetBySourceRequestID(requestID string) (*entity.ExpenseRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.aborted {
		return nil, errTxAborted
	}
	e, ok := r.s.expenses[requestID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeExpenseRepo) ListByProject(projectID string) ([]entity.ExpenseRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.ExpenseRecord, 0)
	for _, e := range r.s.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAuditRepo struct{ s *store }

func (r *fakeAuditRepo) Append(e *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r *fakeAuditRepo) ListByEntity(entityType, entityID string) ([]entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.AuditLogEntry, 0)
	for _, e := range r.s.audit {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTxRunner serializes transactions with a single mutex, mirroring the
// per-project row lock, and rolls the store back when fn fails.
type fakeTxRunner struct {
	s    *store
	txMu sync.Mutex
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	requestRepo repository.SpendingRequestRepository,
	projectRepo repository.ProjectRepository,
	expenseRepo repository.ExpenseRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	snap := t.s.snapshot()
	err := fn(&fakeRequestRepo{t.s}, &fakeProjectRepo{t.s}, &fakeExpenseRepo{t.s}, &fakeAuditRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	t.s.mu.Lock()
	t.s.aborted = false
	t.s.mu.Unlock()
	return err
}

type fixture struct {
	s  *store
	uc *approval.WorkflowUseCase
}

func newFixture() *fixture {
	s := newStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := approval.NewWorkflowUseCase(
		&fakeTxRunner{s: s},
		&fakeRequestRepo{s},
		&fakeProjectRepo{s},
		&fakeAuditRepo{s},
		log,
	)
	return &fixture{s: s, uc: uc}
}

func (f *fixture) seedProject(t *testing.T, invested, used float64) string {
	t.Helper()
	inv := decimal.NewFromFloat(invested)
	u := decimal.NewFromFloat(used)
	p := entity.Project{
		ID:                   uuid.New().String(),
		Name:                 "Riverside Apartments",
		TotalInvestedCapital: inv,
		TotalUsedCapital:     u,
		CapitalBalance:       inv.Sub(u),
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	f.s.projects[p.ID] = p
	return p.ID
}

func (f *fixture) project(t *testing.T, id string) entity.Project {
	t.Helper()
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[id]
	require.True(t, ok)
	return p
}

func (f *fixture) submit(t *testing.T, projectID string, amount float64) string {
	t.Helper()
	resp, err := f.uc.Submit(context.Background(), "requester-1", dto.SubmitSpendingRequest{
		ProjectID: projectID,
		Kind:      entity.RequestKindMaterial,
		Amount:    decimal.NewFromFloat(amount),
	})
	require.NoError(t, err)
	return resp.Request.ID
}

func TestSubmit_CreatesPendingRequestWithAdvisoryWarning(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)

	resp, err := f.uc.Submit(context.Background(), "requester-1", dto.SubmitSpendingRequest{
		ProjectID:   projectID,
		Kind:        entity.RequestKindProfessionalFee,
		Description: "structural engineer site visit",
		Amount:      decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, resp.Request.Status)
	assert.Equal(t, "requester-1", resp.Request.RequestedBy)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "NONE", resp.Warning.Level)
	assert.Nil(t, resp.Expense)

	// Submission never touches capital.
	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.IsZero())
	assert.Len(t, f.s.audit, 1)
	assert.Equal(t, entity.AuditActionSubmitted, f.s.audit[0].Action)
}

func TestSubmit_WarnsWithoutBlockingWhenAmountExceedsBalance(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 10000, 0)

	resp, err := f.uc.Submit(context.Background(), "requester-1", dto.SubmitSpendingRequest{
		ProjectID: projectID,
		Kind:      entity.RequestKindMaterial,
		Amount:    decimal.NewFromInt(50000),
	})
	require.NoError(t, err, "an oversized request is still accepted")

	assert.Equal(t, entity.StatusPending, resp.Request.Status)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "ERROR", resp.Warning.Level)
	assert.Equal(t, "INSUFFICIENT", resp.Warning.Code)
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)

	_, err := f.uc.Submit(context.Background(), "u", dto.SubmitSpendingRequest{
		ProjectID: projectID, Kind: "travel_expense", Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Submit(context.Background(), "u", dto.SubmitSpendingRequest{
		ProjectID: projectID, Kind: entity.RequestKindMaterial, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Submit(context.Background(), "u", dto.SubmitSpendingRequest{
		ProjectID: uuid.New().String(), Kind: entity.RequestKindMaterial, Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_DebitsCapitalAndRecordsExpenseAtomically(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 30000)

	resp, err := f.uc.Approve(context.Background(), requestID, "approver-1", "quotes reviewed")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, resp.Request.Status)
	assert.Equal(t, "approver-1", resp.Request.ApprovedBy)
	assert.Equal(t, "quotes reviewed", resp.Request.ApprovalNotes)

	require.NotNil(t, resp.Expense)
	assert.Equal(t, requestID, resp.Expense.SourceRequestID)
	assert.True(t, resp.Expense.Amount.Equal(decimal.NewFromInt(30000)))

	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.Equal(decimal.NewFromInt(30000)))
	assert.True(t, p.CapitalBalance.Equal(decimal.NewFromInt(70000)))

	require.NotNil(t, resp.Warning)
	assert.Equal(t, "NONE", resp.Warning.Level)

	entries, err := f.uc.AuditTrail(context.Background(), requestID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.AuditActionApproved, entries[1].Action)
}

// Capital commits at approval, not at payment: an approval that overdraws the
// project still goes through, carrying an ERROR-level warning.
func TestApprove_OverdraftApprovedWithErrorWarning(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 20000, 0)
	requestID := f.submit(t, projectID, 50000)

	resp, err := f.uc.Approve(context.Background(), requestID, "approver-1", "")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, resp.Request.Status)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "ERROR", resp.Warning.Level)
	assert.Equal(t, "INSUFFICIENT", resp.Warning.Code)

	p := f.project(t, projectID)
	assert.True(t, p.CapitalBalance.Equal(decimal.NewFromInt(-30000)))
}

func TestApprove_OnlyPendingRequestsCanBeApproved(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 10000)

	_, err := f.uc.Approve(context.Background(), requestID, "approver-1", "")
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), requestID, "approver-2", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// The failed second approval must not debit again.
	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.Equal(decimal.NewFromInt(10000)))
}

func TestApprove_DuplicateExpenseIsIdempotent(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 10000)

	// A previous partially-retried attempt already wrote the expense.
	existing := entity.ExpenseRecord{
		ID:              uuid.New().String(),
		SourceRequestID: requestID,
		ProjectID:       projectID,
		Amount:          decimal.NewFromInt(10000),
		CreatedAt:       time.Now(),
	}
	f.s.expenses[requestID] = existing

	resp, err := f.uc.Approve(context.Background(), requestID, "approver-1", "")
	require.NoError(t, err)

	require.NotNil(t, resp.Expense)
	assert.Equal(t, existing.ID, resp.Expense.ID, "the existing expense is reused, not duplicated")
	assert.Len(t, f.s.expenses, 1)

	// The approval itself still lands: status flipped, capital debited once.
	assert.Equal(t, entity.StatusApproved, resp.Request.Status)
	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.Equal(decimal.NewFromInt(10000)))
}

func TestReject_RequiresNonBlankReason(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 10000)

	_, err := f.uc.Reject(context.Background(), requestID, "approver-1", "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err := f.uc.Reject(context.Background(), requestID, "approver-1", "supplier not vetted")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, resp.Request.Status)
	assert.Equal(t, "supplier not vetted", resp.Request.RejectionReason)

	// Rejection has no financial effect.
	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.IsZero())
	assert.Empty(t, f.s.expenses)
}

func TestRecordPayment_OnlyApprovedRequestsAndNoCapitalEffect(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 25000)
	payDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	// PENDING cannot be paid.
	_, err := f.uc.RecordPayment(context.Background(), requestID, "pm-1", dto.RecordPaymentRequest{
		Method: "mpesa", Date: &payDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.Approve(context.Background(), requestID, "approver-1", "")
	require.NoError(t, err)
	balanceAfterApproval := f.project(t, projectID).CapitalBalance

	// Method and date are mandatory.
	_, err = f.uc.RecordPayment(context.Background(), requestID, "pm-1", dto.RecordPaymentRequest{Method: "mpesa"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.RecordPayment(context.Background(), requestID, "pm-1", dto.RecordPaymentRequest{Date: &payDate})
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err := f.uc.RecordPayment(context.Background(), requestID, "pm-1", dto.RecordPaymentRequest{
		Method: "mpesa", Date: &payDate, Reference: "QX12AB34",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, resp.Request.Status)
	assert.Equal(t, "mpesa", resp.Request.PaymentMethod)
	assert.Equal(t, "QX12AB34", resp.Request.PaymentRef)

	// The debit happened at approval; payment changes nothing.
	assert.True(t, f.project(t, projectID).CapitalBalance.Equal(balanceAfterApproval))

	// Terminal: cannot pay twice or archive a paid request.
	_, err = f.uc.RecordPayment(context.Background(), requestID, "pm-1", dto.RecordPaymentRequest{
		Method: "mpesa", Date: &payDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.Archive(context.Background(), requestID, "pm-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestArchive_RetiresApprovedRequestWithoutPayment(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	requestID := f.submit(t, projectID, 5000)

	_, err := f.uc.Archive(context.Background(), requestID, "pm-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending requests cannot be archived")

	_, err = f.uc.Approve(context.Background(), requestID, "approver-1", "")
	require.NoError(t, err)

	resp, err := f.uc.Archive(context.Background(), requestID, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusArchived, resp.Request.Status)

	entries, err := f.uc.AuditTrail(context.Background(), requestID)
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	assert.Equal(t,
		[]string{entity.AuditActionSubmitted, entity.AuditActionApproved, entity.AuditActionArchived},
		actions)
}

// Two concurrent approvals against the same project must both land, each
// debiting exactly once against the balance the other left behind.
func TestApprove_ConcurrentApprovalsSerializePerProject(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	firstID := f.submit(t, projectID, 60000)
	secondID := f.submit(t, projectID, 60000)

	var wg sync.WaitGroup
	warnings := make([]string, 2)
	for i, id := range []string{firstID, secondID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			resp, err := f.uc.Approve(context.Background(), id, "approver-1", "")
			if assert.NoError(t, err) && resp.Warning != nil {
				warnings[i] = resp.Warning.Level
			}
		}(i, id)
	}
	wg.Wait()

	p := f.project(t, projectID)
	assert.True(t, p.TotalUsedCapital.Equal(decimal.NewFromInt(120000)),
		"both debits applied exactly once, got %s", p.TotalUsedCapital)
	assert.True(t, p.CapitalBalance.Equal(decimal.NewFromInt(-20000)))
	assert.Len(t, f.s.expenses, 2)

	// Whichever approval ran second saw the overdraft.
	assert.Contains(t, warnings, "ERROR")
}

func TestGetByID_UnknownRequest(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByProject_FiltersByStatus(t *testing.T) {
	f := newFixture()
	projectID := f.seedProject(t, 100000, 0)
	first := f.submit(t, projectID, 1000)
	f.submit(t, projectID, 2000)

	_, err := f.uc.Approve(context.Background(), first, "approver-1", "")
	require.NoError(t, err)

	all, err := f.uc.ListByProject(context.Background(), projectID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.uc.ListByProject(context.Background(), projectID, entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.StatusPending, pending[0].Status)
}
