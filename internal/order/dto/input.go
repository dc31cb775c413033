package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlaceOrderInput struct {
	OwnerID       string // cart scope being checked out
	CustomerID    string // optional, empty for walk-in sales
	PayType       string
	PaidAmount    decimal.Decimal
	OrderDiscount decimal.Decimal
	IsPercentage  bool
	Note          string
	// SubmittedTotal is the till-side grand total, cross-checked against the
	// server-computed one. nil skips the check.
	SubmittedTotal *decimal.Decimal
}

// PlaceOrderParams carries the transaction-level knobs into the repository.
type PlaceOrderParams struct {
	OwnerID       string
	AllowOversell bool
	SoldBy        string
}

type UpdateStatusInput struct {
	OrderID string
	Status  string
}

type OrderFilters struct {
	CustomerID string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}
