package order

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/order/dto"
)

type Repository interface {
	// PlaceOrder runs the whole checkout in one transaction: it inserts the
	// order and its items, debits stock per line with audit movements,
	// reconciles the customer balances when a customer is attached and drains
	// the owner's cart. When params.AllowOversell is false the transaction
	// fails on insufficient stock.
	PlaceOrder(ctx context.Context, ord *model.Order, params *dto.PlaceOrderParams) error

	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// UpdateStatus transitions the order and, in the same transaction,
	// restocks items on cancellation and re-debits them when a cancelled
	// order is reopened.
	UpdateStatus(ctx context.Context, id, from, to string) error
}
