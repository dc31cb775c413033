package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records incoming stock from a supplier. Discount is a flat amount
// off the line, GST a percentage on the discounted amount.
type Purchase struct {
	ID            string          `db:"id" json:"id"`
	SupplierID    string          `db:"supplier_id" json:"supplier_id"`
	VariantID     string          `db:"variant_id" json:"variant_id"`
	Quantity      int             `db:"quantity" json:"quantity"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	GST           decimal.Decimal `db:"gst" json:"gst"`
	TotalPrice    decimal.Decimal `db:"total_price" json:"total_price"`
	Date          time.Time       `db:"date" json:"date"`
}

// RecomputeTotalPrice refreshes the derived purchase total:
// (qty*price - discount) * (1 + gst/100), rounded to 2 decimals.
func (p *Purchase) RecomputeTotalPrice() {
	base := p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
	discounted := base.Sub(p.Discount)
	gstAmount := discounted.Mul(p.GST).Div(hundred)
	p.TotalPrice = discounted.Add(gstAmount).Round(2)
}
