// Package ledger holds the single canonical payment allocation used both by
// order placement and by ad-hoc customer payments. Keeping it in one pure
// function is what guarantees the two paths never diverge.
package ledger

import "github.com/shopspring/decimal"

// Allocation is the customer balance state after reconciling a payment.
// Invariant: PendingAmount and AdvancePayment are never both positive.
type Allocation struct {
	PendingAmount  decimal.Decimal
	AdvancePayment decimal.Decimal
	IsPaid         bool
}

// Allocate reconciles a payment of paid against an order of total for a
// customer currently owing pending and holding advance credit.
//
// Overpayment first clears the outstanding pending amount and any remainder
// becomes advance credit. Underpayment is first covered from advance credit
// and any remainder is added to the pending amount. Existing credit and debt
// are always netted against each other, so the resulting state holds at most
// one non-zero balance.
//
// IsPaid reports whether the order itself was fully covered by the payment
// plus available advance credit.
//
// Ad-hoc payments (no order) are the degenerate case total = 0.
func Allocate(pending, advance, total, paid decimal.Decimal) Allocation {
	// Net position of the customer after this transaction: positive means
	// the customer still owes, negative means the store holds credit.
	balance := pending.Sub(advance).Add(total).Sub(paid)

	alloc := Allocation{
		PendingAmount:  decimal.Zero,
		AdvancePayment: decimal.Zero,
		IsPaid:         paid.Add(advance).GreaterThanOrEqual(total),
	}
	if balance.IsPositive() {
		alloc.PendingAmount = balance
	} else {
		alloc.AdvancePayment = balance.Neg()
	}
	return alloc
}

// ApplyPayment reconciles an ad-hoc payment against the customer balances:
// the amount reduces pending first (floored at zero) and any overflow is
// held as advance credit.
func ApplyPayment(pending, advance, amount decimal.Decimal) Allocation {
	return Allocate(pending, advance, decimal.Zero, amount)
}
