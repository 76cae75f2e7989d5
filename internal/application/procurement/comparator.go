package procurement

import (
	"context"
	"strings"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/procurement"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

// ComparatorUseCase ranks suppliers for a set of requested materials by
// their historical unit costs. Results are computed on demand and never
// cached: the underlying history can change between calls.
type ComparatorUseCase struct {
	priceRepo repository.SupplierPriceRepository
}

// NewComparatorUseCase builds the price comparator.
func NewComparatorUseCase(priceRepo repository.SupplierPriceRepository) *ComparatorUseCase {
	return &ComparatorUseCase{priceRepo: priceRepo}
}

// Compare aggregates the price history per supplier and ranks suppliers
// ascending by estimated total. Suppliers with no resolvable material stay in
// the output but are excluded from ranking and from the cheapest pick.
func (uc *ComparatorUseCase) Compare(ctx context.Context, in dto.PriceComparisonRequest) (*dto.PriceComparisonResponse, error) {
	if len(in.Materials) == 0 {
		return nil, domain.ErrValidation
	}
	requested := make([]procurement.RequestedMaterial, 0, len(in.Materials))
	for _, m := range in.Materials {
		if strings.TrimSpace(m.Material) == "" || !m.Quantity.IsPositive() {
			return nil, domain.ErrValidation
		}
		requested = append(requested, procurement.RequestedMaterial{Material: m.Material, Quantity: m.Quantity})
	}

	history, err := uc.priceRepo.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	quotes := procurement.CompareSuppliers(requested, history)

	resp := &dto.PriceComparisonResponse{
		Suppliers: make([]dto.SupplierQuoteDTO, 0, len(quotes)),
	}
	for _, q := range quotes {
		materials := make([]dto.MaterialEstimateDTO, 0, len(q.Materials))
		for _, m := range q.Materials {
			materials = append(materials, dto.MaterialEstimateDTO{
				Material:           m.Material,
				RequestedQuantity:  m.RequestedQuantity,
				EstimatedUnitCost:  m.EstimatedUnitCost,
				EstimatedTotalCost: m.EstimatedTotalCost,
				Confidence:         string(m.Confidence),
				DataPoints:         m.DataPoints,
				HasData:            m.HasData,
			})
		}
		resp.Suppliers = append(resp.Suppliers, dto.SupplierQuoteDTO{
			SupplierID:         q.SupplierID,
			SupplierName:       q.SupplierName,
			Materials:          materials,
			TotalEstimatedCost: q.TotalEstimatedCost,
			TotalDataPoints:    q.TotalDataPoints,
			HasHistoricalData:  q.HasHistoricalData,
			Rank:               q.Rank,
		})
		if q.HasHistoricalData {
			resp.SuppliersCompared++
			if q.Rank == 1 {
				resp.CheapestSupplierID = q.SupplierID
				resp.CheapestSupplier = q.SupplierName
				resp.CheapestTotal = q.TotalEstimatedCost
			}
		} else {
			resp.SuppliersWithoutFit++
		}
	}
	return resp, nil
}
