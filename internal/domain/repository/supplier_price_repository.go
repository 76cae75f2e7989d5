package repository

import (
	"context"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

// SupplierPriceRepository reads historical unit-cost observations for the
// price comparator. Data is re-read on every comparison, never cached.
type SupplierPriceRepository interface {
	// GetHistory returns the full price history across all suppliers. The
	// comparator resolves material intersections itself: filtering by
	// material here would drop suppliers whose history covers none of the
	// requested materials, and those must still show up unranked.
	GetHistory(ctx context.Context) ([]entity.SupplierPricePoint, error)
}
