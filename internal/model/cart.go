package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a transient staging row, scoped to an owner (the cashier
// session) so concurrent counters never see each other's carts. Price is a
// snapshot defaulting to the variant price; the whole cart is drained when
// an order is placed.
type CartItem struct {
	ID           string          `db:"id" json:"id"`
	OwnerID      string          `db:"owner_id" json:"owner_id"`
	VariantID    string          `db:"variant_id" json:"variant_id"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Price        decimal.Decimal `db:"price" json:"price"`
	ItemDiscount decimal.Decimal `db:"item_discount" json:"item_discount"`
	IsPercentage bool            `db:"is_percentage" json:"is_percentage"`
	GST          decimal.Decimal `db:"gst" json:"gst"`
	DateAdded    time.Time       `db:"date_added" json:"date_added"`
}
