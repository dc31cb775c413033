package cart

import (
	"context"

	"hardware-pos/internal/cart/dto"
	"hardware-pos/internal/model"
)

type UseCase interface {
	AddItem(ctx context.Context, input *dto.AddItemInput) (*model.CartItem, error)
	ListItems(ctx context.Context, ownerID string) ([]model.CartItem, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.CartItem, error)
	RemoveItem(ctx context.Context, ownerID, itemID string) error
	ClearCart(ctx context.Context, ownerID string) error
}
