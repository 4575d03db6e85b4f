package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tripsplit/internal/models"
)

func TestNormalize(t *testing.T) {
	rates := &models.RateTable{
		Base:  "USD",
		Date:  "2026-10-16",
		Rates: map[string]float64{"USD": 1, "EUR": 0.9, "JPY": 150},
	}

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		rates  *models.RateTable
		want   float64
	}{
		{"same currency skips lookup", 42.5, "XYZ", "XYZ", rates, 42.5},
		{"same currency without rates", 42.5, "EUR", "EUR", nil, 42.5},
		{"EUR to USD", 90, "EUR", "USD", rates, 100},
		{"USD to EUR", 100, "USD", "EUR", rates, 90},
		{"cross rate JPY to EUR", 1500, "JPY", "EUR", rates, 9},
		{"nil rates falls back", 90, "EUR", "USD", nil, 90},
		{"missing source falls back", 90, "GBP", "USD", rates, 90},
		{"missing target falls back", 90, "EUR", "GBP", rates, 90},
		{"zero rate treated as missing", 90, "EUR", "USD", &models.RateTable{Rates: map[string]float64{"EUR": 0, "USD": 1}}, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.amount, tt.from, tt.to, tt.rates)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNormalize_IdentityForAnyCurrency(t *testing.T) {
	rates := &models.RateTable{Rates: map[string]float64{"USD": 1, "EUR": 0.9}}
	for _, code := range []string{"USD", "EUR", "JPY", ""} {
		for _, x := range []float64{0.01, 1, 33.33, 999999999} {
			if got := Normalize(x, code, code, rates); got != x {
				t.Errorf("Normalize(%v, %q, %q) = %v, want unchanged", x, code, code, got)
			}
		}
	}
}

func TestUnconvertible(t *testing.T) {
	rates := &models.RateTable{Rates: map[string]float64{"USD": 1, "EUR": 0.9}}
	expenses := []models.Expense{
		{Amount: 1, Currency: "EUR"},
		{Amount: 1, Currency: "THB"},
		{Amount: 1, Currency: "USD"},
		{Amount: 1, Currency: "THB"},
		{Amount: 1, Currency: "KRW"},
	}

	got := Unconvertible(expenses, "USD", rates)
	want := []string{"THB", "KRW"}
	if len(got) != len(want) {
		t.Fatalf("Unconvertible() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Unconvertible()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if !CanConvert("EUR", "USD", rates) {
		t.Error("CanConvert(EUR, USD) = false, want true")
	}
	if CanConvert("EUR", "USD", nil) {
		t.Error("CanConvert with nil rates = true, want false")
	}
}
