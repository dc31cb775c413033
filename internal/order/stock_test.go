package order

import "testing"

func TestCanDebit(t *testing.T) {
	cases := []struct {
		name          string
		have, need    int
		allowNegative bool
		want          bool
	}{
		{"covered debit", 5, 3, false, true},
		{"exact boundary", 3, 3, false, true},
		{"short without oversell", 2, 3, false, false},
		{"short with oversell", 2, 3, true, true},
		{"empty shelf with oversell", 0, 1, true, true},
		{"credit never blocked", 0, -4, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDebit(tc.have, tc.need, tc.allowNegative); got != tc.want {
				t.Errorf("CanDebit(%d, %d, %v) = %v, want %v", tc.have, tc.need, tc.allowNegative, got, tc.want)
			}
		})
	}
}

// Two placements of 3 units against a stock of 5 serialize through the row
// lock; the second either drives stock to -1 (oversell) or is rejected and
// leaves stock at 2 (strict). Either way the final value is never a lost
// update of the first debit.
func TestSerializedDebitsNoLostUpdate(t *testing.T) {
	debit := func(stock *int, need int, allowNegative bool) bool {
		if !CanDebit(*stock, need, allowNegative) {
			return false
		}
		*stock -= need
		return true
	}

	stock := 5
	if !debit(&stock, 3, true) || !debit(&stock, 3, true) {
		t.Fatal("oversell must admit both debits")
	}
	if stock != -1 {
		t.Errorf("stock = %d, want -1 after 5 - 3 - 3", stock)
	}

	stock = 5
	if !debit(&stock, 3, false) {
		t.Fatal("first covered debit must pass")
	}
	if debit(&stock, 3, false) {
		t.Error("second debit must be rejected with 2 on hand")
	}
	if stock != 2 {
		t.Errorf("stock = %d, want 2 after the rejected debit", stock)
	}
}

func TestOutstandingQuantity(t *testing.T) {
	cases := []struct {
		name              string
		ordered, returned int
		want              int
	}{
		{"nothing returned", 3, 0, 3},
		{"partial return leaves the rest", 3, 1, 2},
		{"fully returned", 3, 3, 0},
		{"over-returned clamps at zero", 3, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutstandingQuantity(tc.ordered, tc.returned); got != tc.want {
				t.Errorf("OutstandingQuantity(%d, %d) = %d, want %d", tc.ordered, tc.returned, got, tc.want)
			}
		})
	}
}
