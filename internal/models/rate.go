package models

import "time"

// RateTable is an exchange-rate snapshot.
// Rates[code] is the number of units of code per 1 unit of Base.
// A table is never mutated after it is built; a newer fetch replaces it.
type RateTable struct {
	// Base is the currency every rate is relative to.
	Base string `json:"base"`

	// Date is the as-of date published by the provider (YYYY-MM-DD).
	Date string `json:"date"`

	// Rates maps currency code to rate. Missing codes are expected.
	Rates map[string]float64 `json:"rates"`

	// FetchedAt is the Unix timestamp when the table was obtained. Zero for built-in tables.
	FetchedAt int64 `json:"fetchedAt,omitempty"`
}

// Rate returns the rate for code and whether it is usable.
func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.Rates[code]
	return r, ok && r > 0
}

// Age returns how long ago the table was fetched.
func (t *RateTable) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(t.FetchedAt, 0))
}

// IsStale reports whether the table is older than ttl.
// Tables without a fetch time are always stale.
func (t *RateTable) IsStale(now time.Time, ttl time.Duration) bool {
	return t.FetchedAt == 0 || t.Age(now) >= ttl
}
