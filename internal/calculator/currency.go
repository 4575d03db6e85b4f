package calculator

import "github.com/mmynk/tripsplit/internal/models"

// Normalize converts amount from one currency to another using the rate table.
//
// Both rates in the table are relative to the same base, so the cross rate is
// rates[to] / rates[from] whatever that base is. When the currencies match no lookup
// is done. When rates is nil or either currency is missing, the amount is returned
// unchanged: a missing rate degrades to identity conversion instead of failing.
func Normalize(amount float64, from, to string, rates *models.RateTable) float64 {
	if from == to {
		return amount
	}
	fromRate, ok := rates.Rate(from)
	if !ok {
		return amount
	}
	toRate, ok := rates.Rate(to)
	if !ok {
		return amount
	}
	return amount * (toRate / fromRate)
}

// CanConvert reports whether Normalize performs a real conversion between from and to,
// as opposed to falling back to the identity.
func CanConvert(from, to string, rates *models.RateTable) bool {
	if from == to {
		return true
	}
	_, okFrom := rates.Rate(from)
	_, okTo := rates.Rate(to)
	return okFrom && okTo
}

// Unconvertible returns the distinct expense currencies that cannot be converted to base
// with the given rates, in first-seen order.
func Unconvertible(expenses []models.Expense, base string, rates *models.RateTable) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, e := range expenses {
		if seen[e.Currency] {
			continue
		}
		seen[e.Currency] = true
		if !CanConvert(e.Currency, base, rates) {
			missing = append(missing, e.Currency)
		}
	}
	return missing
}
