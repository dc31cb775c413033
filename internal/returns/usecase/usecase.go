package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	"hardware-pos/internal/order"
	"hardware-pos/internal/returns"
	"hardware-pos/internal/returns/dto"
	"hardware-pos/pkg/broker"
	"hardware-pos/pkg/logger"
)

const publishTimeout = 10 * time.Second

type returnsUseCase struct {
	repo      returns.Repository
	orderRepo order.Repository
	publisher *broker.Publisher
	logger    logger.ZapLogger
}

func NewReturnsUseCase(repo returns.Repository, orderRepo order.Repository, pub *broker.Publisher, log logger.ZapLogger) returns.UseCase {
	return &returnsUseCase{
		repo:      repo,
		orderRepo: orderRepo,
		publisher: pub,
		logger:    log,
	}
}

func (uc *returnsUseCase) CreateReturn(ctx context.Context, input *dto.CreateReturnInput) (*model.OrderReturn, error) {
	if !model.IsValidReturnReason(input.Reason) {
		return nil, apperr.Validation("reason", "unknown reason %q", input.Reason)
	}
	if len(input.Items) == 0 {
		return nil, apperr.Validation("items", "at least one item is required")
	}
	if input.ProcessingFee.IsNegative() {
		return nil, apperr.Validation("processing_fee", "processing fee must not be negative")
	}

	ord, err := uc.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.NotFound("order")
	}
	if ord.Status == model.OrderStatusCancelled {
		return nil, apperr.Validation("order", "cannot return items from a cancelled order")
	}

	orderItems := map[string]*model.OrderItem{}
	for i := range ord.Items {
		orderItems[ord.Items[i].ID] = &ord.Items[i]
	}

	alreadyReturned, err := uc.repo.ReturnedQuantities(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	ret := &model.OrderReturn{
		ID:            uuid.New().String(),
		OrderID:       input.OrderID,
		ReturnDate:    time.Now(),
		Status:        model.ReturnStatusPending,
		Reason:        input.Reason,
		Notes:         input.Notes,
		ProcessingFee: input.ProcessingFee.Round(2),
	}

	total := decimal.Zero
	for _, in := range input.Items {
		if in.ReturnQuantity <= 0 {
			return nil, apperr.Validation("return_quantity", "return quantity must be positive")
		}
		if !model.IsValidCondition(in.Condition) {
			return nil, apperr.Validation("condition", "unknown condition %q", in.Condition)
		}

		item, ok := orderItems[in.OrderItemID]
		if !ok {
			return nil, apperr.Validation("order_item_id", "item %s does not belong to order %s", in.OrderItemID, input.OrderID)
		}

		available := item.Quantity - alreadyReturned[item.ID]
		if in.ReturnQuantity > available {
			return nil, apperr.Validation("return_quantity",
				"cannot return %d of item %s: only %d left after earlier returns", in.ReturnQuantity, item.ID, available)
		}

		perUnit := refundPerUnit(item)
		totalRefund := perUnit.Mul(decimal.NewFromInt(int64(in.ReturnQuantity))).Round(2)
		total = total.Add(totalRefund)

		ret.Items = append(ret.Items, model.ReturnItem{
			ID:             uuid.New().String(),
			ReturnID:       ret.ID,
			OrderItemID:    in.OrderItemID,
			ReturnQuantity: in.ReturnQuantity,
			Condition:      in.Condition,
			RefundPerUnit:  perUnit,
			TotalRefund:    totalRefund,
		})
	}

	if input.ProcessingFee.GreaterThan(total) {
		return nil, apperr.Validation("processing_fee", "processing fee exceeds the return amount")
	}

	ret.TotalReturnAmount = total.Round(2)
	ret.RefundAmount = ret.TotalReturnAmount.Sub(ret.ProcessingFee)

	if err := uc.repo.Create(ctx, ret); err != nil {
		return nil, err
	}

	uc.logger.Info("return requested",
		zap.String("return_id", ret.ID),
		zap.String("order_id", ret.OrderID),
		zap.String("refund_amount", ret.RefundAmount.String()),
	)
	go uc.publish("return.requested", ret.ID, ret)
	return ret, nil
}

// refundPerUnit is the per-unit sale value of an order item with its own
// discount and GST folded in. The order-level discount deliberately does not
// reduce the refund.
func refundPerUnit(item *model.OrderItem) decimal.Decimal {
	lt := order.ComputeLineTotals(order.Line{
		VariantID:    item.VariantID,
		Quantity:     item.Quantity,
		UnitPrice:    item.PriceAtSale,
		ItemDiscount: item.ItemDiscount,
		IsPercentage: item.IsPercentage,
		GST:          item.GST,
	})
	return lt.LineFinal.Div(decimal.NewFromInt(int64(item.Quantity))).Round(2)
}

func (uc *returnsUseCase) GetReturn(ctx context.Context, id string) (*model.OrderReturn, error) {
	ret, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperr.NotFound("return")
	}
	return ret, nil
}

func (uc *returnsUseCase) ListReturns(ctx context.Context, filters *dto.ReturnFilters) ([]model.OrderReturn, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *returnsUseCase) ApproveReturn(ctx context.Context, id, processedBy string) (*model.OrderReturn, error) {
	ret, err := uc.repo.Approve(ctx, id, processedBy)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("return approved",
		zap.String("return_id", ret.ID),
		zap.String("order_id", ret.OrderID),
		zap.String("refund_amount", ret.RefundAmount.String()),
	)
	go uc.publish("return.approved", ret.ID, ret)
	return ret, nil
}

func (uc *returnsUseCase) RejectReturn(ctx context.Context, id, processedBy string) (*model.OrderReturn, error) {
	ret, err := uc.repo.Reject(ctx, id, processedBy)
	if err != nil {
		return nil, err
	}

	go uc.publish("return.rejected", ret.ID, ret)
	return ret, nil
}

func (uc *returnsUseCase) CompleteReturn(ctx context.Context, id string) (*model.OrderReturn, error) {
	ret, err := uc.repo.Complete(ctx, id)
	if err != nil {
		return nil, err
	}

	go uc.publish("return.completed", ret.ID, ret)
	return ret, nil
}

func (uc *returnsUseCase) GetStatistics(ctx context.Context) (*dto.ReturnStatistics, error) {
	return uc.repo.Statistics(ctx)
}

func (uc *returnsUseCase) publish(eventType, key string, payload interface{}) {
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
