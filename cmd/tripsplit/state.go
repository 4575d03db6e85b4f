package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/tripsplit/internal/currency"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/validation"
)

// stateFile is the saved state of a trip:
//
//	{
//	  "baseCurrency": "JPY",
//	  "participants": [{"id": "p1", "name": "Alice"}],
//	  "expenses": [{"id": "e1", "payerId": "p1", "amount": 1200, "currency": "JPY",
//	                "description": "Lunch", "date": "2026-10-01T00:00:00.000Z"}],
//	  "exchangeRates": {"base": "USD", "date": "2026-10-01", "rates": {"USD": 1, "JPY": 149.5}}
//	}
//
// Timestamps are ignored; dates keep their YYYY-MM-DD prefix.
type stateFile struct {
	BaseCurrency  string             `json:"baseCurrency"`
	Participants  []stateParticipant `json:"participants"`
	Expenses      []stateExpense     `json:"expenses"`
	ExchangeRates *models.RateTable  `json:"exchangeRates"`
}

type stateParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type stateExpense struct {
	ID          string  `json:"id"`
	PayerID     string  `json:"payerId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// trip is a validated state file.
type trip struct {
	baseCurrency string
	participants []models.Participant
	expenses     []models.Expense
	rates        *models.RateTable // nil when the file has none
}

var errNoParticipants = errors.New("trip has no participants")

func loadState(name string) (*trip, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()
	return parseState(f)
}

// parseState decodes and validates a state file.
func parseState(r io.Reader) (*trip, error) {
	var s stateFile
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}

	t := &trip{baseCurrency: s.BaseCurrency}
	if t.baseCurrency == "" {
		t.baseCurrency = currency.Default
	}
	if err := validation.Currency(t.baseCurrency); err != nil {
		return nil, fmt.Errorf("baseCurrency: %w", err)
	}
	if len(s.Participants) == 0 {
		return nil, errNoParticipants
	}

	known := make(map[string]bool, len(s.Participants))
	for i, p := range s.Participants {
		if p.ID == "" {
			return nil, fmt.Errorf("participant %d: missing id", i+1)
		}
		if err := validation.ParticipantName(p.Name); err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.ID, err)
		}
		known[p.ID] = true
		t.participants = append(t.participants, models.Participant{ID: p.ID, Name: p.Name})
	}

	for i, e := range s.Expenses {
		expense := models.Expense{
			ID:          e.ID,
			PayerID:     e.PayerID,
			Amount:      e.Amount,
			Currency:    e.Currency,
			Description: e.Description,
			Date:        dateOnly(e.Date),
		}
		if expense.ID == "" {
			expense.ID = fmt.Sprintf("expense-%d", i+1)
		}
		if expense.Currency == "" {
			expense.Currency = t.baseCurrency
		}
		if err := validation.Expense(validation.ExpenseInput{
			PayerID:     expense.PayerID,
			Amount:      expense.Amount,
			Currency:    expense.Currency,
			Description: expense.Description,
			Date:        expense.Date,
		}); err != nil {
			return nil, fmt.Errorf("expense %q: %w", expense.ID, err)
		}
		if !known[expense.PayerID] {
			return nil, fmt.Errorf("expense %q: unknown payer %q", expense.ID, expense.PayerID)
		}
		t.expenses = append(t.expenses, expense)
	}

	if s.ExchangeRates != nil && len(s.ExchangeRates.Rates) > 0 {
		t.rates = s.ExchangeRates
	}
	return t, nil
}

// dateOnly keeps the YYYY-MM-DD part of an ISO timestamp.
func dateOnly(s string) string {
	if len(s) > len(validation.DateLayout) {
		return s[:len(validation.DateLayout)]
	}
	return s
}
