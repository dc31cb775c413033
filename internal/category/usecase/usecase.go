package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/category"
	"hardware-pos/internal/category/dto"
	"hardware-pos/internal/model"
	"hardware-pos/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
	}
	if input.Description != "" {
		cat.Description = &input.Description
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Validation("name", "category %q already exists", input.Name)
		}
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category")
	}

	cat.Name = input.Name
	if input.Description != "" {
		cat.Description = &input.Description
	} else {
		cat.Description = nil
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Validation("name", "category %q already exists", input.Name)
		}
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return nil // Already deleted
	}
	return uc.repo.Delete(ctx, id)
}
