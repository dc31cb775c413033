package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/customer"
	"hardware-pos/internal/customer/dto"
	"hardware-pos/internal/model"
	"hardware-pos/pkg/logger"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	now := time.Now()
	cus := &model.Customer{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:           input.Name,
		PendingAmount:  decimal.Zero,
		AdvancePayment: decimal.Zero,
	}
	setOptional(cus, input.Phone, input.Email, input.Address)

	if err := uc.repo.Create(ctx, cus); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Validation("phone", "customer with phone %s already exists", input.Phone)
		}
		return nil, err
	}
	return cus, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	cus, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cus == nil {
		return nil, apperr.NotFound("customer")
	}
	return cus, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *customerUseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.Customer, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	cus, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cus == nil {
		return nil, apperr.NotFound("customer")
	}

	cus.Name = input.Name
	cus.Phone, cus.Email, cus.Address = nil, nil, nil
	setOptional(cus, input.Phone, input.Email, input.Address)
	cus.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cus); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Validation("phone", "customer with phone %s already exists", input.Phone)
		}
		return nil, err
	}
	return cus, nil
}

func (uc *customerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	cus, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cus == nil {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *customerUseCase) ApplyPayment(ctx context.Context, input *dto.ApplyPaymentInput) (*model.Customer, error) {
	if !input.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "amount must be positive")
	}

	cus, err := uc.repo.ApplyPayment(ctx, input.CustomerID, input.Amount)
	if err != nil {
		return nil, err
	}
	if cus == nil {
		return nil, apperr.NotFound("customer")
	}

	uc.logger.Info("payment applied",
		zap.String("customer_id", cus.ID),
		zap.String("amount", input.Amount.String()),
		zap.String("pending_amount", cus.PendingAmount.String()),
		zap.String("advance_payment", cus.AdvancePayment.String()),
	)
	return cus, nil
}

func setOptional(cus *model.Customer, phone, email, address string) {
	if phone != "" {
		cus.Phone = &phone
	}
	if email != "" {
		cus.Email = &email
	}
	if address != "" {
		cus.Address = &address
	}
}
