package pricing

import "github.com/shopspring/decimal"

// LineTotal computes the amount for one order line.
// Total = UnitPrice * Quantity; non-positive quantities contribute nothing.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Shortfall returns how far subtotal falls below the configured minimum,
// or zero when the minimum is met.
func Shortfall(subtotal, minimum decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(minimum) {
		return decimal.Zero
	}
	return minimum.Sub(subtotal)
}
