package calculator

import "github.com/shopspring/decimal"

// Tolerance is the settlement granularity: balances within one cent of zero are settled,
// and no transfer of one cent or less is ever emitted.
const Tolerance = 0.01

var tolerance = decimal.New(1, -2)

// Round2 rounds x to 2 decimals, half away from zero.
// Rounding is done on the shortest decimal representation of x, so 1.005 rounds to 1.01
// even though its binary value is slightly below 1.005.
func Round2(x float64) float64 {
	return cents(x).InexactFloat64()
}

// cents returns x as an exact decimal rounded to 2 places.
func cents(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(2)
}
