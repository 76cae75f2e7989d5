package project_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/project"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

type memProjectRepo struct {
	projects map[string]entity.Project
}

func (r *memProjectRepo) Create(p *entity.Project) error {
	r.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) GetByID(id string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProjectRepo) GetForUpdate(id string) (*entity.Project, error) {
	return r.GetByID(id)
}

func (r *memProjectRepo) List() ([]entity.Project, error) {
	out := make([]entity.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProjectRepo) UpdateCapital(p *entity.Project) error {
	r.projects[p.ID] = *p
	return nil
}

type memAuditRepo struct {
	entries []entity.AuditLogEntry
}

func (r *memAuditRepo) Append(e *entity.AuditLogEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memAuditRepo) ListByEntity(entityType, entityID string) ([]entity.AuditLogEntry, error) {
	return r.entries, nil
}

type memTxRunner struct {
	projectRepo *memProjectRepo
	auditRepo   *memAuditRepo
}

func (t *memTxRunner) RunProject(_ context.Context, fn func(
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(t.projectRepo, t.auditRepo)
}

func newProjectFixture() (*project.UseCase, *memProjectRepo, *memAuditRepo) {
	repo := &memProjectRepo{projects: make(map[string]entity.Project)}
	audit := &memAuditRepo{}
	uc := project.NewUseCase(&memTxRunner{projectRepo: repo, auditRepo: audit}, repo)
	return uc, repo, audit
}

func TestCreate_InitialBalanceEqualsInvestedCapital(t *testing.T) {
	uc, _, audit := newProjectFixture()

	resp, err := uc.Create(context.Background(), "admin-1", dto.CreateProjectRequest{
		Name:            "Lakeview Estate",
		InvestedCapital: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)

	assert.True(t, resp.CapitalBalance.Equal(decimal.NewFromInt(500000)))
	assert.True(t, resp.TotalUsedCapital.IsZero())
	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.AuditActionProjectCreated, audit.entries[0].Action)
}

func TestCreate_Validation(t *testing.T) {
	uc, _, _ := newProjectFixture()

	_, err := uc.Create(context.Background(), "admin-1", dto.CreateProjectRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), "admin-1", dto.CreateProjectRequest{
		Name:            "Negative",
		InvestedCapital: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddCapital_RaisesInvestedAndRecomputesBalance(t *testing.T) {
	uc, repo, audit := newProjectFixture()
	created, err := uc.Create(context.Background(), "admin-1", dto.CreateProjectRequest{
		Name:            "Lakeview Estate",
		InvestedCapital: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	// Simulate prior spending.
	p := repo.projects[created.ID]
	p.TotalUsedCapital = decimal.NewFromInt(95000)
	p.CapitalBalance = decimal.NewFromInt(5000)
	repo.projects[created.ID] = p

	resp, err := uc.AddCapital(context.Background(), created.ID, "admin-1", dto.AddCapitalRequest{
		Amount: decimal.NewFromInt(50000),
		Notes:  "phase two funding",
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalInvestedCapital.Equal(decimal.NewFromInt(150000)))
	assert.True(t, resp.CapitalBalance.Equal(decimal.NewFromInt(55000)))
	require.Len(t, audit.entries, 2)
	assert.Equal(t, entity.AuditActionCapitalAdded, audit.entries[1].Action)
}

func TestAddCapital_Validation(t *testing.T) {
	uc, _, _ := newProjectFixture()

	_, err := uc.AddCapital(context.Background(), "missing", "admin-1", dto.AddCapitalRequest{
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.AddCapital(context.Background(), "missing", "admin-1", dto.AddCapitalRequest{
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
