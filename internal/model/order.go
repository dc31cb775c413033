package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionOrderStatus enforces the order status rules: a completed
// order is frozen, a cancelled order may only reopen to pending.
func CanTransitionOrderStatus(from, to string) bool {
	if from == OrderStatusCompleted {
		return to == OrderStatusCompleted
	}
	if from == OrderStatusCancelled {
		return to == OrderStatusPending || to == OrderStatusCancelled
	}
	return true
}

// Order is immutable once created except for status, payment, discount and
// the derived totals. TotalAmount is the authoritative grand total;
// ReturnAmount accumulates approved refunds.
type Order struct {
	ID                string          `db:"id" json:"id"`
	CustomerID        *string         `db:"customer_id" json:"customer_id"`
	OrderDate         time.Time       `db:"order_date" json:"order_date"`
	Status            string          `db:"status" json:"status"`
	Subtotal          decimal.Decimal `db:"subtotal" json:"subtotal"`
	TotalItemDiscount decimal.Decimal `db:"total_item_discount" json:"total_item_discount"`
	OrderDiscount     decimal.Decimal `db:"order_discount" json:"order_discount"`
	IsPercentage      bool            `db:"is_percentage" json:"is_percentage"`
	TotalDiscount     decimal.Decimal `db:"total_discount" json:"total_discount"`
	TotalGST          decimal.Decimal `db:"total_gst" json:"total_gst"`
	TotalAmount       decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PayType           string          `db:"pay_type" json:"pay_type"`
	IsPaid            bool            `db:"is_paid" json:"is_paid"`
	ReturnAmount      decimal.Decimal `db:"return_amount" json:"return_amount"`
	Note              string          `db:"note" json:"note"`
	Items             []OrderItem     `db:"-" json:"items"`
	Customer          *Customer       `db:"-" json:"customer"` // Joined data
}

// NetAmount is the grand total less cumulative approved refunds.
func (o *Order) NetAmount() decimal.Decimal {
	return o.TotalAmount.Sub(o.ReturnAmount)
}

// OrderItem freezes price/discount/gst at sale time. IsReturn is derived:
// set provisionally when any return request references the item, then
// resynced from approved/completed returns when the request is processed.
// Explicit reconciliation, not a trigger.
type OrderItem struct {
	ID           string          `db:"id" json:"id"`
	OrderID      string          `db:"order_id" json:"order_id"`
	VariantID    string          `db:"variant_id" json:"variant_id"`
	Quantity     int             `db:"quantity" json:"quantity"`
	PriceAtSale  decimal.Decimal `db:"price_at_sale" json:"price_at_sale"`
	ItemDiscount decimal.Decimal `db:"item_discount" json:"item_discount"`
	IsPercentage bool            `db:"is_percentage" json:"is_percentage"`
	GST          decimal.Decimal `db:"gst" json:"gst"`
	IsReturn     bool            `db:"is_return" json:"is_return"`
	Variant      *ProductVariant `db:"-" json:"variant"` // Joined data
}
