package customer

import (
	"context"

	"github.com/shopspring/decimal"

	"hardware-pos/internal/customer/dto"
	"hardware-pos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, cus *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	Update(ctx context.Context, cus *model.Customer) error
	Delete(ctx context.Context, id string) error

	// ApplyPayment locks the customer row, reconciles the payment through the
	// shared allocation and persists the resulting balances in one transaction.
	ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) (*model.Customer, error)
}
