package postgres

import (
	"context"
	"fmt"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

var _ repository.SupplierPriceRepository = (*SupplierPriceRepo)(nil)

// SupplierPriceRepo reads the supplier price history read model.
type SupplierPriceRepo struct {
	q Querier
}

// NewSupplierPriceRepository builds the adapter. Pass pool or tx (Querier).
func NewSupplierPriceRepository(q Querier) *SupplierPriceRepo {
	return &SupplierPriceRepo{q: q}
}

// GetHistory returns every historical price point across all suppliers and
// materials. Unfiltered on purpose: the comparator needs suppliers whose
// history covers none of the requested materials to appear unranked, so the
// material intersection is resolved in the domain layer, not in SQL.
func (r *SupplierPriceRepo) GetHistory(ctx context.Context) ([]entity.SupplierPricePoint, error) {
	query := `
		SELECT id, supplier_id, supplier_name, material, unit_cost, recorded_at
		FROM supplier_prices
		ORDER BY supplier_id, material, recorded_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get price history: %w", err)
	}
	defer rows.Close()

	var out []entity.SupplierPricePoint
	for rows.Next() {
		var p entity.SupplierPricePoint
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.Material, &p.UnitCost, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
