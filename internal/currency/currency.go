// Package currency is the catalog of currencies a trip can record expenses in.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is the base currency used when none is chosen.
const Default = "USD"

// Currency describes one supported currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	// Fraction is the number of minor-unit digits (2 for USD, 0 for JPY).
	Fraction int `json:"fraction"`
}

// supported lists the catalog in display order.
var supported = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "TWD", Name: "New Taiwan Dollar", Symbol: "NT$"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM"},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
	{Code: "VND", Name: "Vietnamese Dong", Symbol: "₫"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp"},
}

var byCode = func() map[string]Currency {
	m := make(map[string]Currency, len(supported))
	for _, c := range supported {
		c.Fraction = fraction(c.Code)
		m[c.Code] = c
	}
	return m
}()

// fraction returns the ISO minor-unit digits known to go-money, 2 when unknown.
func fraction(code string) int {
	if cur := money.GetCurrency(code); cur != nil {
		return cur.Fraction
	}
	return 2
}

// All returns the supported currencies in display order.
func All() []Currency {
	out := make([]Currency, len(supported))
	for i, c := range supported {
		out[i] = byCode[c.Code]
	}
	return out
}

// Supported reports whether code is in the catalog.
func Supported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Symbol returns the display symbol for code, or code itself when unknown.
func Symbol(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Symbol
	}
	return code
}

// Name returns the English name for code, or code itself when unknown.
func Name(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Name
	}
	return code
}

// Format renders amount with the currency's display rules, rounding half away from zero
// to the currency's minor unit. Codes unknown to go-money are rendered as "12.34 XYZ".
func Format(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return decimal.NewFromFloat(amount).StringFixed(2) + " " + code
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
