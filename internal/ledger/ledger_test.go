package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name        string
		pending     string
		advance     string
		total       string
		paid        string
		wantPending string
		wantAdvance string
		wantPaid    bool
	}{
		{
			name:    "exact payment no balances",
			pending: "0", advance: "0", total: "100", paid: "100",
			wantPending: "0", wantAdvance: "0", wantPaid: true,
		},
		{
			name:    "overpayment clears pending then becomes advance",
			pending: "100", advance: "0", total: "250", paid: "400",
			wantPending: "0", wantAdvance: "50", wantPaid: true,
		},
		{
			name:    "overpayment partially clears pending",
			pending: "100", advance: "0", total: "250", paid: "300",
			wantPending: "50", wantAdvance: "0", wantPaid: true,
		},
		{
			name:    "shortfall covered by advance",
			pending: "0", advance: "80", total: "100", paid: "30",
			wantPending: "0", wantAdvance: "10", wantPaid: true,
		},
		{
			name:    "shortfall exceeds advance",
			pending: "0", advance: "20", total: "100", paid: "30",
			wantPending: "50", wantAdvance: "0", wantPaid: false,
		},
		{
			name:    "shortfall adds to existing pending",
			pending: "40", advance: "0", total: "100", paid: "70",
			wantPending: "70", wantAdvance: "0", wantPaid: false,
		},
		{
			name:    "stale simultaneous balances are netted",
			pending: "50", advance: "100", total: "30", paid: "0",
			wantPending: "0", wantAdvance: "20", wantPaid: true,
		},
		{
			name:    "zero payment keeps debt",
			pending: "10", advance: "0", total: "90", paid: "0",
			wantPending: "100", wantAdvance: "0", wantPaid: false,
		},
		{
			name:    "ad-hoc payment clears pending first",
			pending: "60", advance: "0", total: "0", paid: "100",
			wantPending: "0", wantAdvance: "40", wantPaid: true,
		},
		{
			name:    "ad-hoc payment with no pending is pure credit",
			pending: "0", advance: "15", total: "0", paid: "25",
			wantPending: "0", wantAdvance: "40", wantPaid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(dec(tt.pending), dec(tt.advance), dec(tt.total), dec(tt.paid))
			if !got.PendingAmount.Equal(dec(tt.wantPending)) {
				t.Errorf("pending = %s, want %s", got.PendingAmount, tt.wantPending)
			}
			if !got.AdvancePayment.Equal(dec(tt.wantAdvance)) {
				t.Errorf("advance = %s, want %s", got.AdvancePayment, tt.wantAdvance)
			}
			if got.IsPaid != tt.wantPaid {
				t.Errorf("isPaid = %v, want %v", got.IsPaid, tt.wantPaid)
			}
		})
	}
}

// The ledger must never end up holding debt and credit at the same time,
// for any non-negative starting state and payment.
func TestAllocateNeverBothPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		pending := decimal.NewFromFloat(rng.Float64() * 1000).Round(2)
		advance := decimal.NewFromFloat(rng.Float64() * 1000).Round(2)
		total := decimal.NewFromFloat(rng.Float64() * 2000).Round(2)
		paid := decimal.NewFromFloat(rng.Float64() * 3000).Round(2)

		got := Allocate(pending, advance, total, paid)
		if got.PendingAmount.IsPositive() && got.AdvancePayment.IsPositive() {
			t.Fatalf("both balances positive: pending=%s advance=%s (in: %s %s %s %s)",
				got.PendingAmount, got.AdvancePayment, pending, advance, total, paid)
		}
		if got.PendingAmount.IsNegative() || got.AdvancePayment.IsNegative() {
			t.Fatalf("negative balance: pending=%s advance=%s", got.PendingAmount, got.AdvancePayment)
		}
	}
}

// Money is conserved: what the customer owed plus the new order minus what
// they handed over equals the resulting net position.
func TestAllocateConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		pending := decimal.NewFromFloat(rng.Float64() * 500).Round(2)
		advance := decimal.NewFromFloat(rng.Float64() * 500).Round(2)
		total := decimal.NewFromFloat(rng.Float64() * 1000).Round(2)
		paid := decimal.NewFromFloat(rng.Float64() * 1500).Round(2)

		got := Allocate(pending, advance, total, paid)
		wantNet := pending.Sub(advance).Add(total).Sub(paid)
		gotNet := got.PendingAmount.Sub(got.AdvancePayment)
		if !gotNet.Equal(wantNet) {
			t.Fatalf("net position drifted: got %s, want %s", gotNet, wantNet)
		}
	}
}

func TestApplyPayment(t *testing.T) {
	got := ApplyPayment(dec("100"), dec("0"), dec("40"))
	if !got.PendingAmount.Equal(dec("60")) || !got.AdvancePayment.Equal(dec("0")) {
		t.Errorf("partial pay-down: got pending=%s advance=%s", got.PendingAmount, got.AdvancePayment)
	}

	got = ApplyPayment(dec("0"), dec("10"), dec("40"))
	if !got.AdvancePayment.Equal(dec("50")) {
		t.Errorf("credit accumulation: got advance=%s", got.AdvancePayment)
	}
}
