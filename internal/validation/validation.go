// Package validation checks user input before it reaches the store or the calculator.
// The calculator assumes every amount it sees has passed Amount.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/currency"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
	MaxAmount            = 999_999_999
	DateLayout           = "2006-01-02"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = fmt.Errorf("name must be at most %d characters", MaxNameLength)
	ErrPayerRequired       = errors.New("payer is required")
	ErrAmountNotPositive   = errors.New("amount must be greater than 0")
	ErrAmountTooLarge      = errors.New("amount is too large")
	ErrAmountPrecision     = errors.New("amount must have at most 2 decimal places")
	ErrCurrencyUnsupported = errors.New("currency is not supported")
	ErrDescriptionTooLong  = fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	ErrInvalidDate         = errors.New("date must be formatted as YYYY-MM-DD")
)

// ParticipantName validates a participant display name.
// Names made only of whitespace are rejected.
func ParticipantName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Amount validates an expense amount: positive, bounded, and cent-granular.
func Amount(amount float64) error {
	if !(amount > 0) {
		return ErrAmountNotPositive
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	d := decimal.NewFromFloat(amount)
	if !d.Equal(d.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// Currency validates that code is in the catalog.
func Currency(code string) error {
	if !currency.Supported(code) {
		return fmt.Errorf("%w: %q", ErrCurrencyUnsupported, code)
	}
	return nil
}

// Description validates the optional expense note.
func Description(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Date validates an expense date. Empty dates are allowed and mean "today".
func Date(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ExpenseInput is the user-editable part of an expense.
type ExpenseInput struct {
	PayerID     string
	Amount      float64
	Currency    string
	Description string
	Date        string
}

// Expense validates every field of a new expense and reports the first problem found.
func Expense(in ExpenseInput) error {
	if in.PayerID == "" {
		return ErrPayerRequired
	}
	if err := Amount(in.Amount); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if err := Currency(in.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if err := Description(in.Description); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if err := Date(in.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return nil
}
