package supplier

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/supplier/dto"
)

type Repository interface {
	Create(ctx context.Context, sup *model.Supplier) error
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
	FindAll(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error)
	Update(ctx context.Context, sup *model.Supplier) error
	Delete(ctx context.Context, id string) error
}
