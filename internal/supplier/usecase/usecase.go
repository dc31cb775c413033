package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	"hardware-pos/internal/supplier"
	"hardware-pos/internal/supplier/dto"
	"hardware-pos/pkg/logger"
)

type supplierUseCase struct {
	repo   supplier.Repository
	logger logger.ZapLogger
}

func NewSupplierUseCase(repo supplier.Repository, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *supplierUseCase) CreateSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	now := time.Now()
	sup := &model.Supplier{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
	}
	applyOptional(sup, input.Phone, input.Email, input.Address)

	if err := uc.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (uc *supplierUseCase) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	sup, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, apperr.NotFound("supplier")
	}
	return sup, nil
}

func (uc *supplierUseCase) ListSuppliers(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *supplierUseCase) UpdateSupplier(ctx context.Context, input *dto.UpdateSupplierInput) (*model.Supplier, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	sup, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, apperr.NotFound("supplier")
	}

	sup.Name = input.Name
	sup.Phone, sup.Email, sup.Address = nil, nil, nil
	applyOptional(sup, input.Phone, input.Email, input.Address)
	sup.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (uc *supplierUseCase) DeleteSupplier(ctx context.Context, id string) error {
	sup, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sup == nil {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

func applyOptional(sup *model.Supplier, phone, email, address string) {
	if phone != "" {
		sup.Phone = &phone
	}
	if email != "" {
		sup.Email = &email
	}
	if address != "" {
		sup.Address = &address
	}
}
