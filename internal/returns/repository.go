package returns

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/returns/dto"
)

type Repository interface {
	Create(ctx context.Context, ret *model.OrderReturn) error
	FindByID(ctx context.Context, id string) (*model.OrderReturn, error)
	FindAll(ctx context.Context, filters *dto.ReturnFilters) ([]model.OrderReturn, int, error)

	// ReturnedQuantities sums return quantities per order item across all
	// non-rejected returns of the order, pending requests included.
	ReturnedQuantities(ctx context.Context, orderID string) (map[string]int, error)

	// Approve applies the return's effects in one transaction: restock by
	// condition, bump the order's cumulative return amount, flag fully
	// returned items and credit the refund to the customer's advance balance.
	Approve(ctx context.Context, id, processedBy string) (*model.OrderReturn, error)

	Reject(ctx context.Context, id, processedBy string) (*model.OrderReturn, error)
	Complete(ctx context.Context, id string) (*model.OrderReturn, error)

	Statistics(ctx context.Context) (*dto.ReturnStatistics, error)
}
