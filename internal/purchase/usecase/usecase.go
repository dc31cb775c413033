package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	"hardware-pos/internal/product"
	"hardware-pos/internal/purchase"
	"hardware-pos/internal/purchase/dto"
	"hardware-pos/internal/supplier"
	"hardware-pos/pkg/logger"
)

type purchaseUseCase struct {
	repo         purchase.Repository
	supplierRepo supplier.Repository
	productRepo  product.Repository
	logger       logger.ZapLogger
}

func NewPurchaseUseCase(repo purchase.Repository, supplierRepo supplier.Repository, productRepo product.Repository, log logger.ZapLogger) purchase.UseCase {
	return &purchaseUseCase{
		repo:         repo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		logger:       log,
	}
}

func (uc *purchaseUseCase) CreatePurchase(ctx context.Context, input *dto.CreatePurchaseInput) (*model.Purchase, error) {
	if input.Quantity <= 0 {
		return nil, apperr.Validation("quantity", "quantity must be positive")
	}
	if input.PurchasePrice.IsNegative() {
		return nil, apperr.Validation("purchase_price", "purchase price must not be negative")
	}
	if input.Discount.IsNegative() {
		return nil, apperr.Validation("discount", "discount must not be negative")
	}

	sup, err := uc.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, apperr.NotFound("supplier")
	}

	variant, err := uc.productRepo.FindVariantByID(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, apperr.NotFound("product variant")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	pur := &model.Purchase{
		ID:            uuid.New().String(),
		SupplierID:    input.SupplierID,
		VariantID:     input.VariantID,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		Discount:      input.Discount,
		GST:           input.GST,
		Date:          date,
	}
	pur.RecomputeTotalPrice()

	if err := uc.repo.CreateWithStock(ctx, pur); err != nil {
		return nil, err
	}

	uc.logger.Info("purchase recorded",
		zap.String("purchase_id", pur.ID),
		zap.String("variant_id", pur.VariantID),
		zap.Int("quantity", pur.Quantity),
	)
	return pur, nil
}

func (uc *purchaseUseCase) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	pur, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pur == nil {
		return nil, apperr.NotFound("purchase")
	}
	return pur, nil
}

func (uc *purchaseUseCase) ListPurchases(ctx context.Context, filters *dto.PurchaseFilters) ([]model.Purchase, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *purchaseUseCase) DeletePurchase(ctx context.Context, id string) error {
	return uc.repo.DeleteWithStock(ctx, id)
}
