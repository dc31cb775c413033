package purchase

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/purchase/dto"
)

type UseCase interface {
	CreatePurchase(ctx context.Context, input *dto.CreatePurchaseInput) (*model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*model.Purchase, error)
	ListPurchases(ctx context.Context, filters *dto.PurchaseFilters) ([]model.Purchase, int, error)
	DeletePurchase(ctx context.Context, id string) error
}
