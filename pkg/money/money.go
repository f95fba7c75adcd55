package money

import "github.com/shopspring/decimal"

// Cart math stays in float32 to match the backend's pricing semantics;
// this package is the display boundary where amounts are rounded.

// Round returns the amount rounded half-up to two decimal places.
func Round(amount float32) float64 {
	return decimal.NewFromFloat32(amount).Round(2).InexactFloat64()
}

// Format renders an amount with two decimal places, e.g. "110.00".
func Format(amount float32) string {
	return decimal.NewFromFloat32(amount).StringFixed(2)
}

// FormatWithCurrency appends a currency symbol, e.g. "110.00 ₽".
func FormatWithCurrency(amount float32, symbol string) string {
	if symbol == "" {
		return Format(amount)
	}
	return Format(amount) + " " + symbol
}
