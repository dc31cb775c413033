package order

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

func TestComputeLineTotals(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want LineTotals
	}{
		{
			name: "percentage discount with gst",
			line: Line{Quantity: 2, UnitPrice: dec("100"), ItemDiscount: dec("10"), IsPercentage: true, GST: dec("18")},
			want: LineTotals{
				ItemTotal:      dec("200"),
				DiscountAmount: dec("20"),
				Discounted:     dec("180"),
				GSTAmount:      dec("32.40"),
				LineFinal:      dec("212.40"),
			},
		},
		{
			name: "flat discount",
			line: Line{Quantity: 3, UnitPrice: dec("50"), ItemDiscount: dec("15"), IsPercentage: false, GST: dec("0")},
			want: LineTotals{
				ItemTotal:      dec("150"),
				DiscountAmount: dec("15"),
				Discounted:     dec("135"),
				GSTAmount:      dec("0"),
				LineFinal:      dec("135"),
			},
		},
		{
			name: "no discount no gst",
			line: Line{Quantity: 1, UnitPrice: dec("99.99")},
			want: LineTotals{
				ItemTotal:      dec("99.99"),
				DiscountAmount: dec("0"),
				Discounted:     dec("99.99"),
				GSTAmount:      dec("0"),
				LineFinal:      dec("99.99"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLineTotals(tt.line)
			check := func(field string, got, want decimal.Decimal) {
				if !got.Equal(want) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("ItemTotal", got.ItemTotal, tt.want.ItemTotal)
			check("DiscountAmount", got.DiscountAmount, tt.want.DiscountAmount)
			check("Discounted", got.Discounted, tt.want.Discounted)
			check("GSTAmount", got.GSTAmount, tt.want.GSTAmount)
			check("LineFinal", got.LineFinal, tt.want.LineFinal)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: dec("100"), ItemDiscount: dec("10"), IsPercentage: true, GST: dec("18")},
		{Quantity: 1, UnitPrice: dec("500"), ItemDiscount: dec("50"), IsPercentage: false, GST: dec("12")},
	}

	// subtotal = 200 + 500 = 700
	// item discounts = 20 + 50 = 70
	// gst = 32.40 + 54 = 86.40
	// order discount 5% of (700-70) = 31.50
	got := ComputeTotals(lines, dec("5"), true)

	if !got.Subtotal.Equal(dec("700")) {
		t.Errorf("Subtotal = %s, want 700", got.Subtotal)
	}
	if !got.TotalItemDiscount.Equal(dec("70")) {
		t.Errorf("TotalItemDiscount = %s, want 70", got.TotalItemDiscount)
	}
	if !got.OrderDiscount.Equal(dec("31.50")) {
		t.Errorf("OrderDiscount = %s, want 31.50", got.OrderDiscount)
	}
	if !got.TotalDiscount.Equal(dec("101.50")) {
		t.Errorf("TotalDiscount = %s, want 101.50", got.TotalDiscount)
	}
	if !got.TotalGST.Equal(dec("86.40")) {
		t.Errorf("TotalGST = %s, want 86.40", got.TotalGST)
	}
	if !got.TotalAmount.Equal(dec("684.90")) {
		t.Errorf("TotalAmount = %s, want 684.90", got.TotalAmount)
	}
}

// Same inputs always give the same totals, regardless of how many times or
// in which order the computation runs.
func TestComputeTotalsDeterministic(t *testing.T) {
	lines := []Line{
		{Quantity: 4, UnitPrice: dec("37.25"), ItemDiscount: dec("7.5"), IsPercentage: true, GST: dec("18")},
		{Quantity: 9, UnitPrice: dec("12.40"), ItemDiscount: dec("3"), IsPercentage: false, GST: dec("5")},
	}

	first := ComputeTotals(lines, dec("2.5"), true)
	for i := 0; i < 100; i++ {
		again := ComputeTotals(lines, dec("2.5"), true)
		if !again.TotalAmount.Equal(first.TotalAmount) || !again.TotalGST.Equal(first.TotalGST) {
			t.Fatalf("totals drifted on run %d: %+v vs %+v", i, again, first)
		}
	}
}

// total_amount == subtotal - total_discount + total_gst must hold exactly
// for arbitrary valid line sets.
func TestComputeTotalsConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(6)
		lines := make([]Line, 0, n)
		for j := 0; j < n; j++ {
			lines = append(lines, Line{
				Quantity:     1 + rng.Intn(20),
				UnitPrice:    decimal.NewFromFloat(rng.Float64() * 500).Round(2),
				ItemDiscount: decimal.NewFromFloat(rng.Float64() * 30).Round(2),
				IsPercentage: rng.Intn(2) == 0,
				GST:          decimal.NewFromFloat(rng.Float64() * 28).Round(2),
			})
		}
		orderDiscount := decimal.NewFromFloat(rng.Float64() * 15).Round(2)
		isPct := rng.Intn(2) == 0

		got := ComputeTotals(lines, orderDiscount, isPct)
		want := got.Subtotal.Sub(got.TotalDiscount).Add(got.TotalGST)
		if !got.TotalAmount.Equal(want) {
			t.Fatalf("conservation broken: total=%s, subtotal-discount+gst=%s (lines=%+v)",
				got.TotalAmount, want, lines)
		}
		if !got.TotalDiscount.Equal(got.TotalItemDiscount.Add(got.OrderDiscount)) {
			t.Fatalf("discount split broken: %+v", got)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(dec("100.00"), dec("100.01")) {
		t.Error("one cent difference should be tolerated")
	}
	if WithinTolerance(dec("100.00"), dec("100.02")) {
		t.Error("two cents difference should not be tolerated")
	}
}
