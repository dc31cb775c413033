package category

import (
	"context"

	"hardware-pos/internal/category/dto"
	"hardware-pos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, cat *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, cat *model.Category) error
	Delete(ctx context.Context, id string) error
}
