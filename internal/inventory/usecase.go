package inventory

import (
	"context"

	"hardware-pos/internal/inventory/dto"
	"hardware-pos/internal/model"
)

type UseCase interface {
	GetStock(ctx context.Context, variantID string) (*model.Inventory, error)
	ListStock(ctx context.Context, filters *dto.StockFilters) ([]dto.StockLevel, int, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
