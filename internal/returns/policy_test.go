package returns

import (
	"testing"

	"hardware-pos/internal/model"
)

func TestItemFlagged(t *testing.T) {
	cases := []struct {
		name   string
		claims []ReturnClaim
		want   bool
	}{
		{"no claims", nil, false},
		{"pending only clears the provisional marker",
			[]ReturnClaim{{Status: model.ReturnStatusPending, Quantity: 2}}, false},
		{"rejected clears",
			[]ReturnClaim{{Status: model.ReturnStatusRejected, Quantity: 2}}, false},
		{"approved keeps the flag",
			[]ReturnClaim{{Status: model.ReturnStatusApproved, Quantity: 1}}, true},
		{"completed keeps the flag",
			[]ReturnClaim{{Status: model.ReturnStatusCompleted, Quantity: 1}}, true},
		{"approved with zero units does not count",
			[]ReturnClaim{{Status: model.ReturnStatusApproved, Quantity: 0}}, false},
		{"rejected beside an approved claim",
			[]ReturnClaim{
				{Status: model.ReturnStatusRejected, Quantity: 3},
				{Status: model.ReturnStatusApproved, Quantity: 1},
			}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ItemFlagged(tc.claims); got != tc.want {
				t.Errorf("ItemFlagged(%v) = %v, want %v", tc.claims, got, tc.want)
			}
			// Resyncing again must not change the answer.
			if again := ItemFlagged(tc.claims); again != tc.want {
				t.Errorf("second ItemFlagged(%v) = %v, want %v", tc.claims, again, tc.want)
			}
		})
	}
}

func TestRestockQuantity(t *testing.T) {
	cases := []struct {
		name      string
		condition string
		returned  int
		want      int
	}{
		{"good restocks fully", model.ConditionGood, 10, 10},
		{"unopened restocks fully", model.ConditionUnopened, 7, 7},
		{"defective restocks 75 percent", model.ConditionDefective, 10, 7},
		{"defective rounds down", model.ConditionDefective, 1, 0},
		{"damaged restocks 25 percent", model.ConditionDamaged, 10, 2},
		{"damaged rounds down", model.ConditionDamaged, 3, 0},
		{"unknown condition restocks nothing", "melted", 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RestockQuantity(tc.condition, tc.returned); got != tc.want {
				t.Errorf("RestockQuantity(%s, %d) = %d, want %d", tc.condition, tc.returned, got, tc.want)
			}
		})
	}
}
