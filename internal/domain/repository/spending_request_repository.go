package repository

import "github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"

// SpendingRequestRepository is the port for material requests and
// professional fees going through approval.
type SpendingRequestRepository interface {
	Create(r *entity.SpendingRequest) error
	GetByID(id string) (*entity.SpendingRequest, error)
	// GetForUpdate locks the request row so two transitions cannot race.
	GetForUpdate(id string) (*entity.SpendingRequest, error)
	Update(r *entity.SpendingRequest) error
	ListByProject(projectID, status string) ([]entity.SpendingRequest, error)
}
