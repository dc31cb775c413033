package order

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Tolerance allowed when cross-checking a client-submitted total against the
// server-computed one. On mismatch the server value wins.
var Tolerance = decimal.NewFromFloat(0.01)

// Line is one sellable line at checkout: a quantity of a variant at a unit
// price, with its own discount (percent or flat) and GST percentage.
type Line struct {
	VariantID    string
	Quantity     int
	UnitPrice    decimal.Decimal
	ItemDiscount decimal.Decimal
	IsPercentage bool
	GST          decimal.Decimal
}

type LineTotals struct {
	ItemTotal      decimal.Decimal // quantity * unit price
	DiscountAmount decimal.Decimal
	Discounted     decimal.Decimal
	GSTAmount      decimal.Decimal // GST on the line's own discounted amount
	LineFinal      decimal.Decimal
}

func ComputeLineTotals(l Line) LineTotals {
	itemTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))

	var discountAmount decimal.Decimal
	if l.IsPercentage {
		discountAmount = itemTotal.Mul(l.ItemDiscount).Div(hundred)
	} else {
		discountAmount = l.ItemDiscount
	}

	discounted := itemTotal.Sub(discountAmount)
	gstAmount := discounted.Mul(l.GST).Div(hundred)

	return LineTotals{
		ItemTotal:      itemTotal,
		DiscountAmount: discountAmount,
		Discounted:     discounted,
		GSTAmount:      gstAmount,
		LineFinal:      discounted.Add(gstAmount),
	}
}

type Totals struct {
	Subtotal          decimal.Decimal
	TotalItemDiscount decimal.Decimal
	OrderDiscount     decimal.Decimal // resolved order-level discount amount
	TotalDiscount     decimal.Decimal
	TotalGST          decimal.Decimal
	TotalAmount       decimal.Decimal
}

// ComputeTotals aggregates line totals and applies the order-level discount
// on (subtotal - item discounts). GST stays per-line on each line's own
// discounted amount, deliberately not on the order-discounted amount.
//
// Components are rounded to 2 decimals and the grand total is derived from
// the rounded components, so subtotal - total_discount + total_gst always
// equals total_amount exactly.
func ComputeTotals(lines []Line, orderDiscount decimal.Decimal, isPercentage bool) Totals {
	subtotal := decimal.Zero
	itemDiscount := decimal.Zero
	gst := decimal.Zero

	for _, l := range lines {
		lt := ComputeLineTotals(l)
		subtotal = subtotal.Add(lt.ItemTotal)
		itemDiscount = itemDiscount.Add(lt.DiscountAmount)
		gst = gst.Add(lt.GSTAmount)
	}

	discountedSubtotal := subtotal.Sub(itemDiscount)
	var orderDiscountAmount decimal.Decimal
	if isPercentage {
		orderDiscountAmount = discountedSubtotal.Mul(orderDiscount).Div(hundred)
	} else {
		orderDiscountAmount = orderDiscount
	}

	subtotal = subtotal.Round(2)
	itemDiscount = itemDiscount.Round(2)
	orderDiscountAmount = orderDiscountAmount.Round(2)
	gst = gst.Round(2)
	totalDiscount := itemDiscount.Add(orderDiscountAmount)

	return Totals{
		Subtotal:          subtotal,
		TotalItemDiscount: itemDiscount,
		OrderDiscount:     orderDiscountAmount,
		TotalDiscount:     totalDiscount,
		TotalGST:          gst,
		TotalAmount:       subtotal.Sub(totalDiscount).Add(gst),
	}
}

// WithinTolerance reports whether a client-submitted amount agrees with the
// server-computed one up to the rounding tolerance.
func WithinTolerance(computed, submitted decimal.Decimal) bool {
	return computed.Sub(submitted).Abs().LessThanOrEqual(Tolerance)
}
