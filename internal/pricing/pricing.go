package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// discounted returns price * (1 - discountPercent/100) without rounding.
func discounted(price, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return price.Mul(factor)
}

// FinalPrice is the customer-facing unit price after discount.
func FinalPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	return Round2(discounted(price, discountPercent))
}

// Subtotal prices a line. The discount is applied to the unrounded unit price
// and the line is rounded once, so a snapshot of (unitPrice, discount, qty)
// always reproduces the same subtotal.
func Subtotal(unitPrice, discountPercent decimal.Decimal, qty int) decimal.Decimal {
	return Round2(discounted(unitPrice, discountPercent).Mul(decimal.NewFromInt(int64(qty))))
}

// Sum adds amounts and rounds the result to cents.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round2(total)
}
