package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	CategoryID *string          `db:"category_id" json:"category_id"` // Nullable
	Name       string           `db:"name" json:"name"`
	PhotoURL   *string          `db:"photo_url" json:"photo_url"`
	Variants   []ProductVariant `db:"-" json:"variants"` // Not in DB table directly
	Category   *Category        `db:"-" json:"category"` // Joined data
}

// ProductVariant is the unit of pricing and stock: one size/SKU of a product.
// Discount and GST are percentages; TotalPrice is derived and recomputed on
// every write, never set by callers.
type ProductVariant struct {
	BaseModel
	ProductID  string          `db:"product_id" json:"product_id"`
	Size       string          `db:"size" json:"size"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Discount   decimal.Decimal `db:"discount" json:"discount"`
	GST        decimal.Decimal `db:"gst" json:"gst"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
}

var hundred = decimal.NewFromInt(100)

// MaxPercent bounds user-supplied percentage fields.
var MaxPercent = decimal.NewFromInt(100)

// RecomputeTotalPrice refreshes the derived price:
// (price - price*discount/100) * (1 + gst/100), rounded to 2 decimals.
func (v *ProductVariant) RecomputeTotalPrice() {
	afterDiscount := v.Price.Sub(v.Price.Mul(v.Discount).Div(hundred))
	gstAmount := afterDiscount.Mul(v.GST).Div(hundred)
	v.TotalPrice = afterDiscount.Add(gstAmount).Round(2)
}
