package dto

import "github.com/shopspring/decimal"

type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type UpdateCustomerInput struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}

type ApplyPaymentInput struct {
	CustomerID string
	Amount     decimal.Decimal
}

type CustomerFilters struct {
	Search   string
	Page     int
	PageSize int
}
