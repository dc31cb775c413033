package returns

import (
	"context"

	"hardware-pos/internal/model"
	"hardware-pos/internal/returns/dto"
)

type UseCase interface {
	CreateReturn(ctx context.Context, input *dto.CreateReturnInput) (*model.OrderReturn, error)
	GetReturn(ctx context.Context, id string) (*model.OrderReturn, error)
	ListReturns(ctx context.Context, filters *dto.ReturnFilters) ([]model.OrderReturn, int, error)
	ApproveReturn(ctx context.Context, id, processedBy string) (*model.OrderReturn, error)
	RejectReturn(ctx context.Context, id, processedBy string) (*model.OrderReturn, error)
	CompleteReturn(ctx context.Context, id string) (*model.OrderReturn, error)
	GetStatistics(ctx context.Context) (*dto.ReturnStatistics, error)
}
