package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/cart"
	"hardware-pos/internal/cart/dto"
	"hardware-pos/internal/model"
	"hardware-pos/internal/product"
	"hardware-pos/pkg/logger"
)

type cartUseCase struct {
	repo        cart.Repository
	productRepo product.Repository
	logger      logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, productRepo product.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:        repo,
		productRepo: productRepo,
		logger:      log,
	}
}

// AddItem stages a variant in the owner's cart. Re-adding a variant merges
// the quantity into the staged line; Replace overwrites it instead, which is
// how counter staff correct a miskeyed line.
func (uc *cartUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*model.CartItem, error) {
	if input.OwnerID == "" {
		return nil, apperr.Validation("owner_id", "owner is required")
	}
	if input.Quantity <= 0 {
		return nil, apperr.Validation("quantity", "quantity must be positive")
	}
	if input.ItemDiscount.IsNegative() {
		return nil, apperr.Validation("item_discount", "discount must not be negative")
	}
	if input.IsPercentage && input.ItemDiscount.GreaterThan(model.MaxPercent) {
		return nil, apperr.Validation("item_discount", "percentage discount must be between 0 and 100")
	}

	variant, err := uc.productRepo.FindVariantByID(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, apperr.NotFound("product variant")
	}

	price := variant.Price
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperr.Validation("price", "price must not be negative")
		}
		price = *input.Price
	}

	item := &model.CartItem{
		ID:           uuid.New().String(),
		OwnerID:      input.OwnerID,
		VariantID:    input.VariantID,
		Quantity:     input.Quantity,
		Price:        price,
		ItemDiscount: input.ItemDiscount,
		IsPercentage: input.IsPercentage,
		GST:          variant.GST,
		DateAdded:    time.Now(),
	}

	if err := uc.repo.Upsert(ctx, item, input.Replace); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *cartUseCase) ListItems(ctx context.Context, ownerID string) ([]model.CartItem, error) {
	if ownerID == "" {
		return nil, apperr.Validation("owner_id", "owner is required")
	}
	return uc.repo.FindByOwner(ctx, ownerID)
}

func (uc *cartUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.CartItem, error) {
	item, err := uc.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OwnerID != input.OwnerID {
		return nil, apperr.NotFound("cart item")
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, apperr.Validation("quantity", "quantity must be positive")
		}
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperr.Validation("price", "price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.ItemDiscount != nil {
		if input.ItemDiscount.IsNegative() {
			return nil, apperr.Validation("item_discount", "discount must not be negative")
		}
		item.ItemDiscount = *input.ItemDiscount
	}
	if input.IsPercentage != nil {
		item.IsPercentage = *input.IsPercentage
	}
	if input.GST != nil {
		if input.GST.IsNegative() || input.GST.GreaterThan(model.MaxPercent) {
			return nil, apperr.Validation("gst", "gst must be between 0 and 100")
		}
		item.GST = *input.GST
	}
	if item.IsPercentage && item.ItemDiscount.GreaterThan(model.MaxPercent) {
		return nil, apperr.Validation("item_discount", "percentage discount must be between 0 and 100")
	}

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, ownerID, itemID string) error {
	item, err := uc.repo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.OwnerID != ownerID {
		return apperr.NotFound("cart item")
	}
	return uc.repo.Delete(ctx, itemID)
}

func (uc *cartUseCase) ClearCart(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return apperr.Validation("owner_id", "owner is required")
	}
	return uc.repo.DeleteByOwner(ctx, ownerID)
}
