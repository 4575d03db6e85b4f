package models

// DefaultBaseCurrency is the base currency of a new or cleared trip.
const DefaultBaseCurrency = "USD"

// Trip is the state container for one group of travellers.
// It owns the participant list, the expenses, and the currency settlements are computed in.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// OwnerID is the user who created the trip.
	OwnerID string

	// Name is the display name of the trip (e.g., "Kyoto 2026").
	Name string

	// BaseCurrency is the ISO-4217 code all balances and transfers are expressed in.
	BaseCurrency string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Participant is one person sharing the costs of a trip.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// TripID is the trip this participant belongs to.
	TripID string `json:"tripId,omitempty"`

	// Name is the display name, 1 to 50 characters.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64 `json:"createdAt"`
}

// Expense is a single payment made by one participant for the whole group.
// The cost is always split evenly among every participant of the trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the trip this expense belongs to.
	TripID string `json:"tripId,omitempty"`

	// PayerID references the participant who paid.
	// It must point at a live participant when balances are computed.
	PayerID string `json:"payerId"`

	// Amount is the positive amount paid, with at most 2 fractional digits.
	Amount float64 `json:"amount"`

	// Currency is the ISO-4217 code the amount was paid in.
	Currency string `json:"currency"`

	// Description is an optional free-text note, up to 200 characters.
	Description string `json:"description"`

	// Date is the day the expense occurred, formatted as YYYY-MM-DD.
	Date string `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `json:"updatedAt"`
}
