package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/customer/dto"
	"hardware-pos/internal/ledger"
	"hardware-pos/internal/model"
	"hardware-pos/pkg/logger"
)

type mockCustomerRepo struct {
	customers map[string]*model.Customer
}

func (m *mockCustomerRepo) Create(_ context.Context, cus *model.Customer) error {
	m.customers[cus.ID] = cus
	return nil
}

func (m *mockCustomerRepo) FindByID(_ context.Context, id string) (*model.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) FindByPhone(_ context.Context, phone string) (*model.Customer, error) {
	for _, c := range m.customers {
		if c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindAll(_ context.Context, _ *dto.CustomerFilters) ([]model.Customer, int, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, cus *model.Customer) error {
	m.customers[cus.ID] = cus
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id string) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) ApplyPayment(_ context.Context, id string, amount decimal.Decimal) (*model.Customer, error) {
	cus := m.customers[id]
	if cus == nil {
		return nil, nil
	}
	alloc := ledger.ApplyPayment(cus.PendingAmount, cus.AdvancePayment, amount)
	cus.PendingAmount = alloc.PendingAmount
	cus.AdvancePayment = alloc.AdvancePayment
	return cus, nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Level:             "error",
		Encoding:          "console",
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyPaymentClearsPendingThenCredits(t *testing.T) {
	repo := &mockCustomerRepo{customers: map[string]*model.Customer{
		"c1": {
			BaseModel:      model.BaseModel{ID: "c1"},
			Name:           "Asha Traders",
			PendingAmount:  dec("100"),
			AdvancePayment: decimal.Zero,
		},
	}}
	uc := NewCustomerUseCase(repo, testLogger())

	cus, err := uc.ApplyPayment(context.Background(), &dto.ApplyPaymentInput{
		CustomerID: "c1",
		Amount:     dec("150"),
	})
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	if !cus.PendingAmount.IsZero() {
		t.Errorf("pending = %s, want 0", cus.PendingAmount)
	}
	if !cus.AdvancePayment.Equal(dec("50")) {
		t.Errorf("advance = %s, want 50", cus.AdvancePayment)
	}
	if cus.PendingAmount.IsPositive() && cus.AdvancePayment.IsPositive() {
		t.Error("pending and advance must never both be positive")
	}
}

func TestApplyPaymentValidation(t *testing.T) {
	repo := &mockCustomerRepo{customers: map[string]*model.Customer{}}
	uc := NewCustomerUseCase(repo, testLogger())

	if _, err := uc.ApplyPayment(context.Background(), &dto.ApplyPaymentInput{
		CustomerID: "c1",
		Amount:     dec("0"),
	}); !apperr.IsValidation(err) {
		t.Errorf("zero amount must fail validation, got %v", err)
	}

	if _, err := uc.ApplyPayment(context.Background(), &dto.ApplyPaymentInput{
		CustomerID: "missing",
		Amount:     dec("10"),
	}); !apperr.IsNotFound(err) {
		t.Errorf("unknown customer must be not found, got %v", err)
	}
}

func TestCreateCustomerDefaults(t *testing.T) {
	repo := &mockCustomerRepo{customers: map[string]*model.Customer{}}
	uc := NewCustomerUseCase(repo, testLogger())

	cus, err := uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{
		Name:  "Bharat Hardware",
		Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if !cus.PendingAmount.IsZero() || !cus.AdvancePayment.IsZero() {
		t.Error("new customer must start with zero balances")
	}
	if cus.Phone == nil || *cus.Phone != "9876543210" {
		t.Error("phone was not stored")
	}

	if _, err := uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{}); !apperr.IsValidation(err) {
		t.Errorf("missing name must fail validation, got %v", err)
	}
}
