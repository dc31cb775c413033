package model

import "github.com/shopspring/decimal"

// Customer carries two running balances: PendingAmount is what the customer
// owes the store, AdvancePayment is credit the store holds for the customer.
// After every reconciliation at most one of the two is non-zero.
type Customer struct {
	BaseModel
	Name           string          `db:"name" json:"name"`
	Phone          *string         `db:"phone" json:"phone"`
	Email          *string         `db:"email" json:"email"`
	Address        *string         `db:"address" json:"address"`
	PendingAmount  decimal.Decimal `db:"pending_amount" json:"pending_amount"`
	AdvancePayment decimal.Decimal `db:"advance_payment" json:"advance_payment"`
}
