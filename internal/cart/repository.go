package cart

import (
	"context"

	"hardware-pos/internal/model"
)

type Repository interface {
	// Upsert inserts the item or, when the owner already staged the same
	// variant, merges the quantity into the existing row. replace overwrites
	// the quantity instead. The item is updated to the resulting row.
	Upsert(ctx context.Context, item *model.CartItem, replace bool) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, id string) (*model.CartItem, error)
	Update(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
