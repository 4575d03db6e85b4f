package main

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/validation"
)

const sampleState = `{
  "baseCurrency": "USD",
  "participants": [
    {"id": "p1", "name": "Alice", "createdAt": "2026-10-01T09:00:00.000Z"},
    {"id": "p2", "name": "Bob", "createdAt": "2026-10-01T09:00:00.000Z"}
  ],
  "expenses": [
    {"id": "e1", "payerId": "p1", "amount": 100, "currency": "USD", "description": "Hotel", "date": "2026-10-01T12:00:00.000Z"},
    {"id": "e2", "payerId": "p2", "amount": 90, "currency": "EUR", "description": "Dinner", "date": "2026-10-02"}
  ],
  "exchangeRates": {"base": "USD", "date": "2026-10-01", "rates": {"USD": 1, "EUR": 0.9}}
}`

func TestParseState(t *testing.T) {
	trip, err := parseState(strings.NewReader(sampleState))
	if err != nil {
		t.Fatalf("parseState failed: %v", err)
	}
	if trip.baseCurrency != "USD" || len(trip.participants) != 2 || len(trip.expenses) != 2 {
		t.Fatalf("unexpected trip: %+v", trip)
	}
	if trip.expenses[0].Date != "2026-10-01" {
		t.Errorf("date = %q, want timestamp trimmed to 2026-10-01", trip.expenses[0].Date)
	}
	if trip.rates == nil || trip.rates.Rates["EUR"] != 0.9 {
		t.Errorf("rates = %+v", trip.rates)
	}
}

func TestParseState_Errors(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		wantErr error
	}{
		{"not json", `{`, nil},
		{"no participants", `{"participants": []}`, errNoParticipants},
		{"unsupported base", `{"baseCurrency": "XYZ", "participants": [{"id": "a", "name": "A"}]}`, validation.ErrCurrencyUnsupported},
		{"blank name", `{"participants": [{"id": "a", "name": "  "}]}`, validation.ErrNameRequired},
		{"negative amount", `{"participants": [{"id": "a", "name": "A"}], "expenses": [{"payerId": "a", "amount": -1, "currency": "USD"}]}`, validation.ErrAmountNotPositive},
		{"unknown payer", `{"participants": [{"id": "a", "name": "A"}], "expenses": [{"payerId": "b", "amount": 1, "currency": "USD"}]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseState(strings.NewReader(tt.state))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseState_Defaults(t *testing.T) {
	trip, err := parseState(strings.NewReader(`{
		"participants": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}],
		"expenses": [{"payerId": "a", "amount": 10}],
		"exchangeRates": null
	}`))
	if err != nil {
		t.Fatalf("parseState failed: %v", err)
	}
	if trip.baseCurrency != "USD" {
		t.Errorf("base = %s, want USD", trip.baseCurrency)
	}
	if e := trip.expenses[0]; e.ID != "expense-1" || e.Currency != "USD" {
		t.Errorf("expense defaults not applied: %+v", e)
	}
	if trip.rates != nil {
		t.Error("expected no rates")
	}
	if needsConversion(trip) {
		t.Error("single-currency trip should not need conversion")
	}
}

func TestSettleRates_PrefersFile(t *testing.T) {
	trip, err := parseState(strings.NewReader(sampleState))
	if err != nil {
		t.Fatalf("parseState failed: %v", err)
	}

	cmd := &settleCmd{offline: true}
	snap := cmd.rates(context.Background(), trip)
	if snap.Origin != originFile || snap.Table != trip.rates {
		t.Errorf("expected file rates, got %s", snap.Origin)
	}

	trip.rates = nil
	snap = cmd.rates(context.Background(), trip)
	if snap.Origin != rates.OriginFallback {
		t.Errorf("offline without file rates: origin = %s, want fallback", snap.Origin)
	}
}

func TestCrossRate(t *testing.T) {
	table := &models.RateTable{Base: "USD", Rates: map[string]float64{"USD": 1, "EUR": 0.8, "JPY": 160}}
	tests := []struct {
		base, code string
		want       float64
	}{
		{"USD", "EUR", 0.8},
		{"EUR", "JPY", 200},
		{"EUR", "USD", 1.25},
		{"USD", "GBP", 0},
	}
	for _, tt := range tests {
		if got := crossRate(tt.base, tt.code, table); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("crossRate(%s, %s) = %v, want %v", tt.base, tt.code, got, tt.want)
		}
	}
}

func TestRatesMarkdown(t *testing.T) {
	snap := rates.Snapshot{Table: rates.Fallback(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)), Origin: rates.OriginFallback}
	out := ratesMarkdown("EUR", snap)

	if !strings.Contains(out, "Exchange rates for 1 EUR") || !strings.Contains(out, "(fallback)") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "Japanese Yen") {
		t.Errorf("expected JPY row:\n%s", out)
	}
	if strings.Contains(out, "| EUR ") {
		t.Errorf("base currency should not be listed:\n%s", out)
	}
}

func TestCurrenciesMarkdown(t *testing.T) {
	out := currenciesMarkdown()
	for _, want := range []string{"USD", "$1,234.50", "IDR"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}
