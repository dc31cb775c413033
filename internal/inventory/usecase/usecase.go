package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/inventory"
	"hardware-pos/internal/inventory/dto"
	"hardware-pos/internal/model"
	"hardware-pos/pkg/cache"
	"hardware-pos/pkg/logger"
)

const (
	adjustLockPrefix = "lock:inventory:"
	adjustLockTTL    = 5 * time.Second
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, rc *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  rc,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, variantID string) (*model.Inventory, error) {
	inv, err := uc.repo.FindByVariantID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// A variant with no inventory row simply has zero stock.
		return &model.Inventory{VariantID: variantID, Quantity: 0}, nil
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListStock(ctx context.Context, filters *dto.StockFilters) ([]dto.StockLevel, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// AdjustStock serializes manual corrections per variant behind a redis lock
// so two clerks cannot interleave adjustments for the same item.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (int, error) {
	if input.Delta == 0 {
		return 0, apperr.Validation("delta", "delta must not be zero")
	}

	lockKey := adjustLockPrefix + input.VariantID
	lockValue := uuid.New().String()
	acquired, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, adjustLockTTL)
	if err != nil {
		return 0, err
	}
	if !acquired {
		return 0, apperr.Validation("variant_id", "another adjustment is in progress for this variant")
	}
	defer func() {
		if err := uc.cache.ReleaseLock(context.Background(), lockKey, lockValue); err != nil {
			uc.logger.Warn("inventory lock release failed", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	after, err := uc.repo.AdjustWithMovement(ctx, &dto.Adjustment{
		VariantID:     input.VariantID,
		Delta:         input.Delta,
		MovementType:  model.MovementAdjustment,
		ReferenceType: model.MovementAdjustment,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("variant_id", input.VariantID),
		zap.Int("delta", input.Delta),
		zap.Int("quantity", after),
	)
	return after, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.FindMovements(ctx, filters)
}
