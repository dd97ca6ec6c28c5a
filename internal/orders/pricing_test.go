package orders

import "testing"

func TestServiceLineTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     string
	}{
		{"ten percent off", 100, 10, "90.00"},
		{"no discount", 100, 0, "100.00"},
		{"full discount", 100, 100, "0.00"},
		{"fractional price", 59.9, 15, "50.92"},
		{"unselected line", 0, 50, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ServiceLineTotal(tc.price, tc.discount).StringFixed(2)
			if got != tc.want {
				t.Fatalf("ServiceLineTotal(%v, %v) = %s, want %s", tc.price, tc.discount, got, tc.want)
			}
		})
	}
}

func TestProductLineTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		qty      int
		discount float64
		want     string
	}{
		{"three units no discount", 50, 3, 0, "150.00"},
		{"zero quantity", 50, 0, 0, "0.00"},
		{"full discount", 50, 3, 100, "0.00"},
		{"discounted multi unit", 19.9, 4, 25, "59.70"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProductLineTotal(tc.price, tc.qty, tc.discount).StringFixed(2)
			if got != tc.want {
				t.Fatalf("ProductLineTotal(%v, %v, %v) = %s, want %s", tc.price, tc.qty, tc.discount, got, tc.want)
			}
		})
	}
}

func TestOrderTotalMixedLines(t *testing.T) {
	services := []DraftLine{{ItemID: 1, UnitPrice: 100, Discount: 10}}
	products := []DraftLine{{ItemID: 2, UnitPrice: 50, Quantity: 3}}

	if got := OrderTotal(services, nil).StringFixed(2); got != "90.00" {
		t.Fatalf("service-only total = %s, want 90.00", got)
	}
	if got := OrderTotal(nil, products).StringFixed(2); got != "150.00" {
		t.Fatalf("product-only total = %s, want 150.00", got)
	}
	if got := OrderTotal(services, products).StringFixed(2); got != "240.00" {
		t.Fatalf("mixed total = %s, want 240.00", got)
	}
	if got := OrderTotal(nil, nil).StringFixed(2); got != "0.00" {
		t.Fatalf("empty total = %s, want 0.00", got)
	}
}

func TestOrderTotalReorderInvariant(t *testing.T) {
	a := []DraftLine{
		{ItemID: 1, UnitPrice: 33.33, Discount: 5},
		{ItemID: 2, UnitPrice: 120, Discount: 12.5},
		{ItemID: 3, UnitPrice: 7.77, Discount: 0},
	}
	b := []DraftLine{a[2], a[0], a[1]}

	if x, y := OrderTotal(a, nil), OrderTotal(b, nil); !x.Equal(y) {
		t.Fatalf("total changed under reordering: %s vs %s", x, y)
	}
}

func TestOrderTotalNoIntermediateRounding(t *testing.T) {
	// Each line is 33.333...; rounding per line would give 99.99.
	lines := []DraftLine{
		{ItemID: 1, UnitPrice: 100, Discount: 200.0 / 3},
		{ItemID: 2, UnitPrice: 100, Discount: 200.0 / 3},
		{ItemID: 3, UnitPrice: 100, Discount: 200.0 / 3},
	}
	if got := OrderTotal(lines, nil).StringFixed(2); got != "100.00" {
		t.Fatalf("accumulated total = %s, want 100.00", got)
	}
}
