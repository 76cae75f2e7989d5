package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo reads the stock position read model for the advisor.
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the adapter. Pass pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, project_id, material, unit, quantity_purchased, quantity_delivered, quantity_remaining`

// ListByProject returns a project's stock items ordered by material.
func (r *StockRepo) ListByProject(ctx context.Context, projectID string) ([]entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE project_id = $1 ORDER BY material`
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var out []entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Material, &s.Unit, &s.QuantityPurchased, &s.QuantityDelivered, &s.QuantityRemaining); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one stock item. Returns (nil, nil) when absent.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id = $1`
	var s entity.StockItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ProjectID, &s.Material, &s.Unit, &s.QuantityPurchased, &s.QuantityDelivered, &s.QuantityRemaining,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &s, nil
}
