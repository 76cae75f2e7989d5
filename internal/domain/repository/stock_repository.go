package repository

import (
	"context"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

// StockRepository reads the stock position read model for the advisor.
type StockRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]entity.StockItem, error)
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
}
