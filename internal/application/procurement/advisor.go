package procurement

import (
	"context"
	"sort"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/procurement"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// AdvisorUseCase classifies a project's stock positions and suggests reorder
// quantities. Read-only: the engine never mutates stock.
type AdvisorUseCase struct {
	stockRepo repository.StockRepository
}

// NewAdvisorUseCase builds the stock advisor.
func NewAdvisorUseCase(stockRepo repository.StockRepository) *AdvisorUseCase {
	return &AdvisorUseCase{stockRepo: stockRepo}
}

// ListStock returns every stock item of a project with its classification
// and reorder suggestion.
func (uc *AdvisorUseCase) ListStock(ctx context.Context, projectID string) ([]dto.StockStatusDTO, error) {
	items, err := uc.stockRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockStatusDTO, 0, len(items))
	for i := range items {
		out = append(out, toStockStatus(items[i]))
	}
	return out, nil
}

// ReplenishmentList returns only the items that actually need reordering
// (DEPLETED or LOW), most depleted first. Items awaiting delivery are not
// low stock and are excluded.
func (uc *AdvisorUseCase) ReplenishmentList(ctx context.Context, projectID string) ([]dto.StockStatusDTO, error) {
	items, err := uc.stockRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockStatusDTO, 0)
	for i := range items {
		s := toStockStatus(items[i])
		if s.Status == string(procurement.StockDepleted) || s.Status == string(procurement.StockLow) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RemainingPct.LessThan(out[j].RemainingPct)
	})
	return out, nil
}

// GetItem returns one classified stock item.
func (uc *AdvisorUseCase) GetItem(ctx context.Context, itemID string) (*dto.StockStatusDTO, error) {
	item, err := uc.stockRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	s := toStockStatus(*item)
	return &s, nil
}

func toStockStatus(item entity.StockItem) dto.StockStatusDTO {
	status, pct := procurement.ClassifyStock(item)
	return dto.StockStatusDTO{
		ID:                item.ID,
		Material:          item.Material,
		Unit:              item.Unit,
		QuantityPurchased: item.QuantityPurchased,
		QuantityDelivered: item.QuantityDelivered,
		QuantityRemaining: item.QuantityRemaining,
		Status:            string(status),
		RemainingPct:      pct.Round(2),
		SuggestedReorder:  procurement.SuggestReorderQuantity(item),
	}
}
