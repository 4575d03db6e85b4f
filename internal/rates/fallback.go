package rates

import (
	"maps"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

// fallbackRates are approximate USD rates used when no table was ever fetched.
var fallbackRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"JPY": 149.5,
	"GBP": 0.79,
	"CNY": 7.24,
	"KRW": 1320,
	"THB": 35.8,
	"SGD": 1.35,
	"AUD": 1.52,
	"CAD": 1.36,
	"CHF": 0.88,
	"HKD": 7.83,
	"TWD": 31.2,
	"INR": 83.1,
	"MYR": 4.68,
	"PHP": 56.2,
	"VND": 24500,
	"IDR": 15400,
}

// Fallback returns the built-in USD table dated today.
// Its FetchedAt is zero so it always reports as stale.
// Conversions only use rate ratios, so the table serves any requested base.
func Fallback(now time.Time) *models.RateTable {
	return &models.RateTable{
		Base:  "USD",
		Date:  now.Format("2006-01-02"),
		Rates: maps.Clone(fallbackRates),
	}
}
