package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/cart"
	"hardware-pos/internal/model"
	"hardware-pos/internal/order"
	"hardware-pos/internal/order/dto"
	"hardware-pos/pkg/broker"
	"hardware-pos/pkg/logger"
)

const publishTimeout = 10 * time.Second

type orderUseCase struct {
	repo          order.Repository
	cartRepo      cart.Repository
	publisher     *broker.Publisher
	allowOversell bool
	logger        logger.ZapLogger
}

// NewOrderUseCase builds the checkout usecase. publisher may be nil when the
// broker is not configured; order events are then skipped.
func NewOrderUseCase(repo order.Repository, cartRepo cart.Repository, pub *broker.Publisher, allowOversell bool, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:          repo,
		cartRepo:      cartRepo,
		publisher:     pub,
		allowOversell: allowOversell,
		logger:        log,
	}
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error) {
	if input.OwnerID == "" {
		return nil, apperr.Validation("owner_id", "owner is required")
	}
	if input.PaidAmount.IsNegative() {
		return nil, apperr.Validation("paid_amount", "paid amount must not be negative")
	}
	if input.OrderDiscount.IsNegative() {
		return nil, apperr.Validation("discount", "discount must not be negative")
	}
	if input.IsPercentage && input.OrderDiscount.GreaterThan(model.MaxPercent) {
		return nil, apperr.Validation("discount", "percentage discount must be between 0 and 100")
	}

	cartItems, err := uc.cartRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperr.Validation("cart", "cart is empty")
	}

	lines := make([]order.Line, 0, len(cartItems))
	for _, ci := range cartItems {
		lines = append(lines, order.Line{
			VariantID:    ci.VariantID,
			Quantity:     ci.Quantity,
			UnitPrice:    ci.Price,
			ItemDiscount: ci.ItemDiscount,
			IsPercentage: ci.IsPercentage,
			GST:          ci.GST,
		})
	}

	totals := order.ComputeTotals(lines, input.OrderDiscount, input.IsPercentage)
	if input.SubmittedTotal != nil && !order.WithinTolerance(totals.TotalAmount, *input.SubmittedTotal) {
		uc.logger.Warn("submitted total disagrees with computed total",
			zap.String("submitted", input.SubmittedTotal.String()),
			zap.String("computed", totals.TotalAmount.String()),
		)
	}

	ord := &model.Order{
		ID:                uuid.New().String(),
		OrderDate:         time.Now(),
		Status:            model.OrderStatusPending,
		Subtotal:          totals.Subtotal,
		TotalItemDiscount: totals.TotalItemDiscount,
		OrderDiscount:     input.OrderDiscount,
		IsPercentage:      input.IsPercentage,
		TotalDiscount:     totals.TotalDiscount,
		TotalGST:          totals.TotalGST,
		TotalAmount:       totals.TotalAmount,
		PaidAmount:        input.PaidAmount.Round(2),
		PayType:           input.PayType,
		IsPaid:            input.PaidAmount.GreaterThanOrEqual(totals.TotalAmount),
		ReturnAmount:      decimal.Zero,
		Note:              input.Note,
	}
	if input.CustomerID != "" {
		ord.CustomerID = &input.CustomerID
	}

	for _, l := range lines {
		ord.Items = append(ord.Items, model.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      ord.ID,
			VariantID:    l.VariantID,
			Quantity:     l.Quantity,
			PriceAtSale:  l.UnitPrice,
			ItemDiscount: l.ItemDiscount,
			IsPercentage: l.IsPercentage,
			GST:          l.GST,
		})
	}

	err = uc.repo.PlaceOrder(ctx, ord, &dto.PlaceOrderParams{
		OwnerID:       input.OwnerID,
		AllowOversell: uc.allowOversell,
		SoldBy:        input.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.String("order_id", ord.ID),
		zap.String("total_amount", ord.TotalAmount.String()),
		zap.Bool("is_paid", ord.IsPaid),
	)
	go uc.publish("order.placed", ord.ID, ord)
	return ord, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	ord, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.NotFound("order")
	}
	return ord, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, error) {
	if !model.IsValidOrderStatus(input.Status) {
		return nil, apperr.Validation("status", "unknown status %q", input.Status)
	}

	ord, err := uc.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.NotFound("order")
	}
	if !model.CanTransitionOrderStatus(ord.Status, input.Status) {
		return nil, apperr.Validation("status", "cannot change status from %s to %s", ord.Status, input.Status)
	}

	if err := uc.repo.UpdateStatus(ctx, input.OrderID, ord.Status, input.Status); err != nil {
		return nil, err
	}
	ord.Status = input.Status

	go uc.publish("order.status_changed", ord.ID, ord)
	return ord, nil
}

func (uc *orderUseCase) publish(eventType, key string, payload interface{}) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := uc.publisher.Publish(ctx, key, broker.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}); err != nil {
		uc.logger.Warn("event publish failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
