package orders

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ServiceLineTotal computes price × (1 − discount/100). The result keeps
// full decimal precision; callers fix to 2 dp only when persisting or
// presenting.
func ServiceLineTotal(unitPrice, discount float64) decimal.Decimal {
	return applyDiscount(decimal.NewFromFloat(unitPrice), discount)
}

// ProductLineTotal computes price × quantity × (1 − discount/100).
func ProductLineTotal(unitPrice float64, quantity int, discount float64) decimal.Decimal {
	gross := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	return applyDiscount(gross, discount)
}

// OrderTotal sums every line total across both sequences without intermediate
// rounding. Unselected lines carry a zero unit price and contribute nothing.
func OrderTotal(services, products []DraftLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range services {
		total = total.Add(ServiceLineTotal(l.UnitPrice, l.Discount))
	}
	for _, l := range products {
		total = total.Add(ProductLineTotal(l.UnitPrice, l.Quantity, l.Discount))
	}
	return total
}

func applyDiscount(gross decimal.Decimal, discount float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount).Div(hundred))
	return gross.Mul(factor)
}
