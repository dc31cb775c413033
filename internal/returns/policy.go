package returns

import (
	"hardware-pos/internal/model"
)

// ReturnClaim is one return request's hold on an order item.
type ReturnClaim struct {
	Status   string `db:"status"`
	Quantity int    `db:"quantity"`
}

// ItemFlagged recomputes the is_return marker for an order item from the
// requests claiming it. Creation sets a provisional marker; this resync keeps
// it only while an approved or completed request holds units, so rejecting
// the sole request clears it. Pure, so repeated resyncs agree.
func ItemFlagged(claims []ReturnClaim) bool {
	for _, c := range claims {
		if c.Quantity <= 0 {
			continue
		}
		if c.Status == model.ReturnStatusApproved || c.Status == model.ReturnStatusCompleted {
			return true
		}
	}
	return false
}

// RestockQuantity is how many of the returned units go back on the shelf,
// by item condition. Good and unopened stock restocks fully; defective and
// damaged stock restocks the salvageable share, rounded down.
func RestockQuantity(condition string, returned int) int {
	switch condition {
	case model.ConditionGood, model.ConditionUnopened:
		return returned
	case model.ConditionDefective:
		return returned * 75 / 100
	case model.ConditionDamaged:
		return returned * 25 / 100
	default:
		return 0
	}
}
