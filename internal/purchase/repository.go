package purchase

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/purchase/dto"
)

type Repository interface {
	// CreateWithStock inserts the purchase, credits the variant's inventory
	// and records the stock movement in one transaction.
	CreateWithStock(ctx context.Context, pur *model.Purchase) error
	FindByID(ctx context.Context, id string) (*model.Purchase, error)
	FindAll(ctx context.Context, filters *dto.PurchaseFilters) ([]model.Purchase, int, error)
	// DeleteWithStock removes the purchase and debits the stock it added.
	DeleteWithStock(ctx context.Context, id string) error
}
