package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with the
// repositories a capital adjustment needs.
type TxRunner interface {
	RunProject(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// UseCase manages projects and their invested capital. Invested capital only
// grows through AddCapital, which is audited like any workflow transition.
type UseCase struct {
	txRunner    TxRunner
	projectRepo repository.ProjectRepository
}

// NewUseCase builds the project use case.
func NewUseCase(txRunner TxRunner, projectRepo repository.ProjectRepository) *UseCase {
	return &UseCase{txRunner: txRunner, projectRepo: projectRepo}
}

// Create registers a project with its initial invested capital.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.InvestedCapital.IsNegative() {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	project := &entity.Project{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		TotalInvestedCapital: in.InvestedCapital,
		TotalUsedCapital:     decimal.Zero,
		CapitalBalance:       in.InvestedCapital,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	err := uc.txRunner.RunProject(ctx, func(
		projectRepo repository.ProjectRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := projectRepo.Create(project); err != nil {
			return err
		}
		return auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     entity.AuditActionProjectCreated,
			EntityType: "project",
			EntityID:   project.ID,
			Changes: map[string]any{
				"after": map[string]any{
					"name":                   project.Name,
					"total_invested_capital": project.TotalInvestedCapital.String(),
				},
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

// AddCapital raises a project's invested capital. This is the only path that
// changes total_invested_capital after creation; the balance is recomputed in
// the same transaction under the project row lock.
func (uc *UseCase) AddCapital(ctx context.Context, projectID, userID string, in dto.AddCapitalRequest) (*dto.ProjectResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	var resp dto.ProjectResponse
	err := uc.txRunner.RunProject(ctx, func(
		projectRepo repository.ProjectRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		project, err := projectRepo.GetForUpdate(projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		before := project.TotalInvestedCapital
		project.TotalInvestedCapital = project.TotalInvestedCapital.Add(in.Amount)
		project.CapitalBalance = project.TotalInvestedCapital.Sub(project.TotalUsedCapital)
		project.UpdatedAt = now
		if err := projectRepo.UpdateCapital(project); err != nil {
			return err
		}
		if err := auditRepo.Append(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     entity.AuditActionCapitalAdded,
			EntityType: "project",
			EntityID:   project.ID,
			Changes: map[string]any{
				"before": map[string]any{"total_invested_capital": before.String()},
				"after": map[string]any{
					"total_invested_capital": project.TotalInvestedCapital.String(),
					"capital_balance":        project.CapitalBalance.String(),
					"notes":                  in.Notes,
				},
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		resp = toProjectResponse(project)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByID returns one project with its capital position.
func (uc *UseCase) GetByID(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

// List returns all projects.
func (uc *UseCase) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := uc.projectRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	return out, nil
}

func toProjectResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		TotalInvestedCapital: p.TotalInvestedCapital,
		TotalUsedCapital:     p.TotalUsedCapital,
		CapitalBalance:       p.CapitalBalance,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
