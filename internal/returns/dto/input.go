package dto

import "github.com/shopspring/decimal"

type ReturnItemInput struct {
	OrderItemID    string
	ReturnQuantity int
	Condition      string
}

type CreateReturnInput struct {
	OrderID       string
	Reason        string
	Notes         string
	ProcessingFee decimal.Decimal
	Items         []ReturnItemInput
}

type ReturnFilters struct {
	OrderID  string
	Status   string
	Reason   string
	Page     int
	PageSize int
}

// StatusCount is one row of the per-status breakdown.
type StatusCount struct {
	Status string          `db:"status" json:"status"`
	Count  int             `db:"count" json:"count"`
	Refund decimal.Decimal `db:"refund" json:"refund"`
}

// ReasonCount is one row of the per-reason breakdown.
type ReasonCount struct {
	Reason string `db:"reason" json:"reason"`
	Count  int    `db:"count" json:"count"`
}

type ReturnStatistics struct {
	TotalReturns   int             `json:"total_returns"`
	TotalRefunded  decimal.Decimal `json:"total_refunded"`
	ByStatus       []StatusCount   `json:"by_status"`
	ByReason       []ReasonCount   `json:"by_reason"`
	PendingReviews int             `json:"pending_reviews"`
}
