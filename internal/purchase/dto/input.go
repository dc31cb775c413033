package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePurchaseInput struct {
	SupplierID    string
	VariantID     string
	Quantity      int
	PurchasePrice decimal.Decimal
	Discount      decimal.Decimal
	GST           decimal.Decimal
	Date          time.Time // zero value means now
}

type PurchaseFilters struct {
	SupplierID string
	VariantID  string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}
