package repository

import "github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"

// ProjectRepository is the port for project capital figures.
// GetForUpdate locks the project row (SELECT FOR UPDATE) and is the
// per-project serialization point for concurrent approvals.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetForUpdate(id string) (*entity.Project, error)
	List() ([]entity.Project, error)
	// UpdateCapital persists invested, used and the recomputed balance in one statement.
	UpdateCapital(p *entity.Project) error
}
