package inventory

import (
	"context"

	"hardware-pos/internal/inventory/dto"
	"hardware-pos/internal/model"
)

type Repository interface {
	FindByVariantID(ctx context.Context, variantID string) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.StockFilters) ([]dto.StockLevel, int, error)

	// AdjustWithMovement locks the inventory row (creating it at zero when
	// missing), applies the delta and records an audit movement in one
	// transaction. Returns the resulting quantity.
	AdjustWithMovement(ctx context.Context, adj *dto.Adjustment) (int, error)

	FindMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
