package product

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, prod *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, prod *model.Product) error
	Delete(ctx context.Context, id string) error

	FindVariantByID(ctx context.Context, variantID string) (*model.ProductVariant, error)
}
