package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	orderdto "hardware-pos/internal/order/dto"
	"hardware-pos/internal/returns/dto"
	"hardware-pos/pkg/logger"
)

type mockReturnsRepo struct {
	created  *model.OrderReturn
	returns  map[string]*model.OrderReturn
	returned map[string]int
}

func (m *mockReturnsRepo) Create(_ context.Context, ret *model.OrderReturn) error {
	m.created = ret
	return nil
}

func (m *mockReturnsRepo) FindByID(_ context.Context, id string) (*model.OrderReturn, error) {
	return m.returns[id], nil
}

func (m *mockReturnsRepo) FindAll(_ context.Context, _ *dto.ReturnFilters) ([]model.OrderReturn, int, error) {
	return nil, 0, nil
}

func (m *mockReturnsRepo) ReturnedQuantities(_ context.Context, _ string) (map[string]int, error) {
	if m.returned == nil {
		return map[string]int{}, nil
	}
	return m.returned, nil
}

func (m *mockReturnsRepo) Approve(_ context.Context, id, processedBy string) (*model.OrderReturn, error) {
	ret := m.returns[id]
	if ret == nil {
		return nil, apperr.NotFound("return")
	}
	if !ret.CanApprove() {
		return nil, apperr.Validation("status", "return is %s", ret.Status)
	}
	ret.Status = model.ReturnStatusApproved
	ret.ProcessedBy = &processedBy
	return ret, nil
}

func (m *mockReturnsRepo) Reject(_ context.Context, id, processedBy string) (*model.OrderReturn, error) {
	ret := m.returns[id]
	if ret == nil {
		return nil, apperr.NotFound("return")
	}
	if !ret.CanReject() {
		return nil, apperr.Validation("status", "return is %s", ret.Status)
	}
	ret.Status = model.ReturnStatusRejected
	ret.ProcessedBy = &processedBy
	return ret, nil
}

func (m *mockReturnsRepo) Complete(_ context.Context, id string) (*model.OrderReturn, error) {
	ret := m.returns[id]
	if ret == nil {
		return nil, apperr.NotFound("return")
	}
	if !ret.CanComplete() {
		return nil, apperr.Validation("status", "return is %s", ret.Status)
	}
	ret.Status = model.ReturnStatusCompleted
	return ret, nil
}

func (m *mockReturnsRepo) Statistics(_ context.Context) (*dto.ReturnStatistics, error) {
	return &dto.ReturnStatistics{}, nil
}

type mockOrderRepo struct {
	orders map[string]*model.Order
}

func (m *mockOrderRepo) PlaceOrder(_ context.Context, _ *model.Order, _ *orderdto.PlaceOrderParams) error {
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, _ *orderdto.OrderFilters) ([]model.Order, int, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, _, _, _ string) error { return nil }

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Level:             "error",
		Encoding:          "console",
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func orderWithItems() *mockOrderRepo {
	return &mockOrderRepo{orders: map[string]*model.Order{
		"o1": {
			ID:     "o1",
			Status: model.OrderStatusCompleted,
			Items: []model.OrderItem{
				// 3 x 100, 10% discount, 18% gst: line final 318.60, per unit 106.20
				{ID: "i1", OrderID: "o1", VariantID: "v1", Quantity: 3,
					PriceAtSale: dec("100"), ItemDiscount: dec("10"), IsPercentage: true, GST: dec("18")},
				// 2 x 50, no discount, no gst: per unit 50
				{ID: "i2", OrderID: "o1", VariantID: "v2", Quantity: 2,
					PriceAtSale: dec("50")},
			},
		},
	}}
}

func TestCreateReturnComputesRefund(t *testing.T) {
	repo := &mockReturnsRepo{}
	uc := NewReturnsUseCase(repo, orderWithItems(), nil, testLogger())

	ret, err := uc.CreateReturn(context.Background(), &dto.CreateReturnInput{
		OrderID:       "o1",
		Reason:        model.ReturnReasonDefective,
		ProcessingFee: dec("5"),
		Items: []dto.ReturnItemInput{
			{OrderItemID: "i1", ReturnQuantity: 2, Condition: model.ConditionDefective},
			{OrderItemID: "i2", ReturnQuantity: 1, Condition: model.ConditionGood},
		},
	})
	if err != nil {
		t.Fatalf("CreateReturn: %v", err)
	}

	if ret.Status != model.ReturnStatusPending {
		t.Errorf("status = %s, want pending", ret.Status)
	}
	if len(ret.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(ret.Items))
	}
	if !ret.Items[0].RefundPerUnit.Equal(dec("106.20")) {
		t.Errorf("refund per unit = %s, want 106.20", ret.Items[0].RefundPerUnit)
	}
	if !ret.Items[0].TotalRefund.Equal(dec("212.40")) {
		t.Errorf("item refund = %s, want 212.40", ret.Items[0].TotalRefund)
	}
	if !ret.TotalReturnAmount.Equal(dec("262.40")) {
		t.Errorf("total return = %s, want 262.40", ret.TotalReturnAmount)
	}
	if !ret.RefundAmount.Equal(dec("257.40")) {
		t.Errorf("refund = %s, want 257.40", ret.RefundAmount)
	}
	if repo.created == nil {
		t.Error("return was not persisted")
	}
}

func TestCreateReturnQuantityBound(t *testing.T) {
	uc := NewReturnsUseCase(&mockReturnsRepo{}, orderWithItems(), nil, testLogger())

	_, err := uc.CreateReturn(context.Background(), &dto.CreateReturnInput{
		OrderID: "o1",
		Reason:  model.ReturnReasonDamaged,
		Items: []dto.ReturnItemInput{
			{OrderItemID: "i1", ReturnQuantity: 4, Condition: model.ConditionDamaged},
		},
	})
	if !apperr.IsValidation(err) {
		t.Errorf("returning 4 of 3 must fail, got %v", err)
	}
}

func TestCreateReturnCountsEarlierReturns(t *testing.T) {
	repo := &mockReturnsRepo{returned: map[string]int{"i1": 2}}
	uc := NewReturnsUseCase(repo, orderWithItems(), nil, testLogger())

	_, err := uc.CreateReturn(context.Background(), &dto.CreateReturnInput{
		OrderID: "o1",
		Reason:  model.ReturnReasonOther,
		Items: []dto.ReturnItemInput{
			{OrderItemID: "i1", ReturnQuantity: 2, Condition: model.ConditionGood},
		},
	})
	if !apperr.IsValidation(err) {
		t.Errorf("2 already returned of 3, requesting 2 more must fail, got %v", err)
	}

	// The one remaining unit is still returnable.
	_, err = uc.CreateReturn(context.Background(), &dto.CreateReturnInput{
		OrderID: "o1",
		Reason:  model.ReturnReasonOther,
		Items: []dto.ReturnItemInput{
			{OrderItemID: "i1", ReturnQuantity: 1, Condition: model.ConditionGood},
		},
	})
	if err != nil {
		t.Errorf("returning the last unit should succeed, got %v", err)
	}
}

func TestCreateReturnRejectsBadInput(t *testing.T) {
	uc := NewReturnsUseCase(&mockReturnsRepo{}, orderWithItems(), nil, testLogger())

	cases := []struct {
		name  string
		input dto.CreateReturnInput
	}{
		{"unknown reason", dto.CreateReturnInput{OrderID: "o1", Reason: "because",
			Items: []dto.ReturnItemInput{{OrderItemID: "i1", ReturnQuantity: 1, Condition: model.ConditionGood}}}},
		{"no items", dto.CreateReturnInput{OrderID: "o1", Reason: model.ReturnReasonOther}},
		{"unknown condition", dto.CreateReturnInput{OrderID: "o1", Reason: model.ReturnReasonOther,
			Items: []dto.ReturnItemInput{{OrderItemID: "i1", ReturnQuantity: 1, Condition: "meh"}}}},
		{"foreign item", dto.CreateReturnInput{OrderID: "o1", Reason: model.ReturnReasonOther,
			Items: []dto.ReturnItemInput{{OrderItemID: "elsewhere", ReturnQuantity: 1, Condition: model.ConditionGood}}}},
		{"zero quantity", dto.CreateReturnInput{OrderID: "o1", Reason: model.ReturnReasonOther,
			Items: []dto.ReturnItemInput{{OrderItemID: "i1", ReturnQuantity: 0, Condition: model.ConditionGood}}}},
		{"fee above refund", dto.CreateReturnInput{OrderID: "o1", Reason: model.ReturnReasonOther, ProcessingFee: dec("1000"),
			Items: []dto.ReturnItemInput{{OrderItemID: "i2", ReturnQuantity: 1, Condition: model.ConditionGood}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateReturn(context.Background(), &tc.input); !apperr.IsValidation(err) {
				t.Errorf("want validation error, got %v", err)
			}
		})
	}
}

func TestCreateReturnCancelledOrder(t *testing.T) {
	orders := &mockOrderRepo{orders: map[string]*model.Order{
		"o1": {ID: "o1", Status: model.OrderStatusCancelled},
	}}
	uc := NewReturnsUseCase(&mockReturnsRepo{}, orders, nil, testLogger())

	_, err := uc.CreateReturn(context.Background(), &dto.CreateReturnInput{
		OrderID: "o1",
		Reason:  model.ReturnReasonOther,
		Items:   []dto.ReturnItemInput{{OrderItemID: "i1", ReturnQuantity: 1, Condition: model.ConditionGood}},
	})
	if !apperr.IsValidation(err) {
		t.Errorf("cancelled order must not accept returns, got %v", err)
	}
}

func TestReturnLifecycle(t *testing.T) {
	repo := &mockReturnsRepo{returns: map[string]*model.OrderReturn{
		"r1": {ID: "r1", OrderID: "o1", Status: model.ReturnStatusPending, RefundAmount: dec("50")},
	}}
	uc := NewReturnsUseCase(repo, orderWithItems(), nil, testLogger())

	ret, err := uc.ApproveReturn(context.Background(), "r1", "manager-1")
	if err != nil {
		t.Fatalf("ApproveReturn: %v", err)
	}
	if ret.Status != model.ReturnStatusApproved {
		t.Errorf("status = %s, want approved", ret.Status)
	}

	// Approving twice must fail.
	if _, err := uc.ApproveReturn(context.Background(), "r1", "manager-1"); !apperr.IsValidation(err) {
		t.Errorf("double approve must fail, got %v", err)
	}
	// So must rejecting after approval.
	if _, err := uc.RejectReturn(context.Background(), "r1", "manager-1"); !apperr.IsValidation(err) {
		t.Errorf("reject after approve must fail, got %v", err)
	}

	ret, err = uc.CompleteReturn(context.Background(), "r1")
	if err != nil {
		t.Fatalf("CompleteReturn: %v", err)
	}
	if ret.Status != model.ReturnStatusCompleted {
		t.Errorf("status = %s, want completed", ret.Status)
	}
	if _, err := uc.CompleteReturn(context.Background(), "r1"); !apperr.IsValidation(err) {
		t.Errorf("double complete must fail, got %v", err)
	}
}
