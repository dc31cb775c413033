package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the inventory listing row joined with its variant and product.
type StockLevel struct {
	VariantID   string          `db:"variant_id" json:"variant_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Size        string          `db:"size" json:"size"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type StockFilters struct {
	Search   string
	MaxStock *int // keep only rows at or below this quantity
	Page     int
	PageSize int
}

type AdjustStockInput struct {
	VariantID string
	Delta     int
	Notes     string
	UserID    string
}

// Adjustment is the repository-level adjustment record.
type Adjustment struct {
	VariantID     string
	Delta         int
	MovementType  string
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedBy     string
}

type MovementFilters struct {
	VariantID    string
	MovementType string
	Page         int
	PageSize     int
}
