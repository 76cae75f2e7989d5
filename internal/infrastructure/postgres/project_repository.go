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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo ProjectRepository implementation over PostgreSQL (usable with
// pool or tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository builds the project adapter. Pass pool or tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, name, total_invested_capital, total_used_capital, capital_balance, created_at, updated_at`

// Create persists a new project.
func (r *ProjectRepo) Create(p *entity.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO projects (id, name, total_invested_capital, total_used_capital, capital_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.TotalInvestedCapital, p.TotalUsedCapital, p.CapitalBalance, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID fetches a project by id. Returns (nil, nil) when absent.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate fetches a project and locks its row (SELECT FOR UPDATE). This
// is the per-project serialization point for concurrent approvals.
func (r *ProjectRepo) GetForUpdate(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List returns all projects, newest first.
func (r *ProjectRepo) List() ([]entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.TotalInvestedCapital, &p.TotalUsedCapital, &p.CapitalBalance, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateCapital persists invested, used and the recomputed balance in one
// statement so the three figures can never drift apart.
func (r *ProjectRepo) UpdateCapital(p *entity.Project) error {
	query := `
		UPDATE projects
		SET total_invested_capital = $2,
		    total_used_capital = $3,
		    capital_balance = $2 - $3,
		    updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.TotalInvestedCapital, p.TotalUsedCapital, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project capital: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project capital: project %s not found", p.ID)
	}
	return nil
}

func (r *ProjectRepo) scanOne(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.ID, &p.Name, &p.TotalInvestedCapital, &p.TotalUsedCapital, &p.CapitalBalance, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}
