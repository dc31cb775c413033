package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestVariantRecomputeTotalPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		gst      string
		want     string
	}{
		{"no discount no gst", "100", "0", "0", "100"},
		{"discount only", "100", "10", "0", "90"},
		{"gst only", "100", "0", "18", "118"},
		{"discount and gst", "100", "10", "18", "106.2"},
		{"rounding", "99.99", "5", "12", "106.39"},
		{"zero price", "0", "50", "18", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := ProductVariant{
				Price:    decimal.RequireFromString(tc.price),
				Discount: decimal.RequireFromString(tc.discount),
				GST:      decimal.RequireFromString(tc.gst),
			}
			v.RecomputeTotalPrice()
			if !v.TotalPrice.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("total price = %s, want %s", v.TotalPrice, tc.want)
			}
		})
	}
}

func TestPurchaseRecomputeTotalPrice(t *testing.T) {
	p := Purchase{
		Quantity:      10,
		PurchasePrice: decimal.RequireFromString("50"),
		Discount:      decimal.RequireFromString("25"),
		GST:           decimal.RequireFromString("18"),
	}
	p.RecomputeTotalPrice()

	// (10*50 - 25) * 1.18 = 560.50
	want := decimal.RequireFromString("560.50")
	if !p.TotalPrice.Equal(want) {
		t.Errorf("total price = %s, want %s", p.TotalPrice, want)
	}
}

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusCompleted, true},
		{OrderStatusCancelled, OrderStatusPending, true},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
	}

	for _, tc := range cases {
		if got := CanTransitionOrderStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionOrderStatus(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReturnStateMachine(t *testing.T) {
	pending := OrderReturn{Status: ReturnStatusPending}
	approved := OrderReturn{Status: ReturnStatusApproved}
	rejected := OrderReturn{Status: ReturnStatusRejected}
	completed := OrderReturn{Status: ReturnStatusCompleted}

	if !pending.CanApprove() || !pending.CanReject() {
		t.Error("pending return must allow approve and reject")
	}
	if pending.CanComplete() {
		t.Error("pending return must not allow complete")
	}
	if !approved.CanComplete() {
		t.Error("approved return must allow complete")
	}
	if approved.CanApprove() || approved.CanReject() {
		t.Error("approved return must not allow approve or reject")
	}
	if rejected.CanApprove() || rejected.CanComplete() || rejected.CanReject() {
		t.Error("rejected return is terminal")
	}
	if completed.CanApprove() || completed.CanComplete() || completed.CanReject() {
		t.Error("completed return is terminal")
	}

	if pending.CountsTowardReturns() || rejected.CountsTowardReturns() {
		t.Error("pending and rejected returns must not count toward returns")
	}
	if !approved.CountsTowardReturns() || !completed.CountsTowardReturns() {
		t.Error("approved and completed returns must count toward returns")
	}
}

func TestOrderNetAmount(t *testing.T) {
	o := Order{
		TotalAmount:  decimal.RequireFromString("500"),
		ReturnAmount: decimal.RequireFromString("120.50"),
	}
	if want := decimal.RequireFromString("379.50"); !o.NetAmount().Equal(want) {
		t.Errorf("net amount = %s, want %s", o.NetAmount(), want)
	}
}
