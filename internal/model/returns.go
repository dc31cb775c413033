package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return statuses. pending is initial; approve/reject only from pending;
// complete only from approved. rejected and completed are terminal.
const (
	ReturnStatusPending   = "pending"
	ReturnStatusApproved  = "approved"
	ReturnStatusRejected  = "rejected"
	ReturnStatusCompleted = "completed"
)

// Return reasons.
const (
	ReturnReasonDefective     = "defective"
	ReturnReasonDamaged       = "damaged"
	ReturnReasonWrongItem     = "wrong_item"
	ReturnReasonNotAsExpected = "not_as_expected"
	ReturnReasonChangedMind   = "changed_mind"
	ReturnReasonOther         = "other"
)

func IsValidReturnReason(r string) bool {
	switch r {
	case ReturnReasonDefective, ReturnReasonDamaged, ReturnReasonWrongItem,
		ReturnReasonNotAsExpected, ReturnReasonChangedMind, ReturnReasonOther:
		return true
	}
	return false
}

// Item conditions, driving the restock percentage on approval.
const (
	ConditionGood      = "good"
	ConditionUnopened  = "unopened"
	ConditionDefective = "defective"
	ConditionDamaged   = "damaged"
)

func IsValidCondition(c string) bool {
	switch c {
	case ConditionGood, ConditionUnopened, ConditionDefective, ConditionDamaged:
		return true
	}
	return false
}

// OrderReturn is a partial or full return request against one order.
// RefundAmount = TotalReturnAmount - ProcessingFee.
type OrderReturn struct {
	ID                string          `db:"id" json:"id"`
	OrderID           string          `db:"order_id" json:"order_id"`
	ReturnDate        time.Time       `db:"return_date" json:"return_date"`
	Status            string          `db:"status" json:"status"`
	Reason            string          `db:"reason" json:"reason"`
	Notes             string          `db:"notes" json:"notes"`
	ProcessingFee     decimal.Decimal `db:"processing_fee" json:"processing_fee"`
	TotalReturnAmount decimal.Decimal `db:"total_return_amount" json:"total_return_amount"`
	RefundAmount      decimal.Decimal `db:"refund_amount" json:"refund_amount"`
	ProcessedBy       *string         `db:"processed_by" json:"processed_by"`
	ProcessedAt       *time.Time      `db:"processed_at" json:"processed_at"`
	Items             []ReturnItem    `db:"-" json:"items"`
}

// CanApprove/CanReject/CanComplete encode the return state machine.
func (r *OrderReturn) CanApprove() bool  { return r.Status == ReturnStatusPending }
func (r *OrderReturn) CanReject() bool   { return r.Status == ReturnStatusPending }
func (r *OrderReturn) CanComplete() bool { return r.Status == ReturnStatusApproved }

// CountsTowardReturns reports whether this return's quantities and refund
// are authoritative (approval already applied its effects; completion keeps
// them).
func (r *OrderReturn) CountsTowardReturns() bool {
	return r.Status == ReturnStatusApproved || r.Status == ReturnStatusCompleted
}

type ReturnItem struct {
	ID             string          `db:"id" json:"id"`
	ReturnID       string          `db:"return_id" json:"return_id"`
	OrderItemID    string          `db:"order_item_id" json:"order_item_id"`
	ReturnQuantity int             `db:"return_quantity" json:"return_quantity"`
	Condition      string          `db:"condition" json:"condition"`
	RefundPerUnit  decimal.Decimal `db:"refund_per_unit" json:"refund_per_unit"`
	TotalRefund    decimal.Decimal `db:"total_refund" json:"total_refund"`
}
