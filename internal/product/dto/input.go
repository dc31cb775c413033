package dto

import "github.com/shopspring/decimal"

type VariantInput struct {
	ID       string // empty on create
	Size     string
	Price    decimal.Decimal
	Discount decimal.Decimal
	GST      decimal.Decimal
}

type CreateProductInput struct {
	Name       string
	CategoryID string
	PhotoURL   string
	Variants   []VariantInput
}

type UpdateProductInput struct {
	ID         string
	Name       string
	CategoryID string
	PhotoURL   string
	Variants   []VariantInput
}

type ProductFilters struct {
	Search     string
	CategoryID string
	Page       int
	PageSize   int
}
