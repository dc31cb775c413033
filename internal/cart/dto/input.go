package dto

import "github.com/shopspring/decimal"

type AddItemInput struct {
	OwnerID      string
	VariantID    string
	Quantity     int
	Price        *decimal.Decimal // nil means snapshot the variant price
	ItemDiscount decimal.Decimal
	IsPercentage bool
	Replace      bool // overwrite the staged quantity instead of merging
}

type UpdateItemInput struct {
	OwnerID      string
	ItemID       string
	Quantity     *int
	Price        *decimal.Decimal
	ItemDiscount *decimal.Decimal
	IsPercentage *bool
	GST          *decimal.Decimal
}
