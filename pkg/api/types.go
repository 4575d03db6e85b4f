package api

// User is a registered trip owner.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Trip is a trip header without its contents.
type Trip struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"baseCurrency"`
	CreatedAt    int64  `json:"createdAt"`
}

// Participant is one person sharing a trip's costs.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Expense is one payment made by a participant for the whole group.
type Expense struct {
	ID          string  `json:"id"`
	PayerID     string  `json:"payerId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// Balance is a participant's position in the base currency.
// Positive means the group owes them.
type Balance struct {
	ParticipantID   string  `json:"participantId"`
	ParticipantName string  `json:"participantName"`
	Paid            float64 `json:"paid"`
	ShouldPay       float64 `json:"shouldPay"`
	Balance         float64 `json:"balance"`
}

// Transfer instructs From to pay Amount to To.
type Transfer struct {
	FromParticipantID string  `json:"fromParticipantId"`
	FromName          string  `json:"fromName"`
	ToParticipantID   string  `json:"toParticipantId"`
	ToName            string  `json:"toName"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
}

// RateTable is an exchange rate snapshot; Origin is one of fresh, cache, stale, fallback.
type RateTable struct {
	Base      string             `json:"base"`
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt int64              `json:"fetchedAt,omitempty"`
	Origin    string             `json:"origin"`
}

// Currency describes a supported currency.
type Currency struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Fraction int    `json:"fraction"`
}

// Auth messages.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Trip messages.

type CreateTripRequest struct {
	// Name defaults to "Trip - <date>" when empty.
	Name string `json:"name"`
	// BaseCurrency defaults to USD when empty.
	BaseCurrency string `json:"baseCurrency"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip         *Trip         `json:"trip"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []Trip `json:"trips"`
}

type DeleteTripRequest struct {
	TripID string `json:"tripId"`
}

type DeleteTripResponse struct{}

type SetBaseCurrencyRequest struct {
	TripID   string `json:"tripId"`
	Currency string `json:"currency"`
}

type SetBaseCurrencyResponse struct {
	Trip *Trip `json:"trip"`
}

type ClearTripRequest struct {
	TripID string `json:"tripId"`
}

type ClearTripResponse struct {
	Trip *Trip `json:"trip"`
}

type AddParticipantRequest struct {
	TripID string `json:"tripId"`
	Name   string `json:"name"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type RenameParticipantRequest struct {
	TripID        string `json:"tripId"`
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
}

type RenameParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	TripID        string `json:"tripId"`
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct {
	// RemovedExpenses counts the expenses paid by the participant that were deleted with them.
	RemovedExpenses int `json:"removedExpenses"`
}

type AddExpenseRequest struct {
	TripID      string  `json:"tripId"`
	PayerID     string  `json:"payerId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// UpdateExpenseRequest edits only the fields that are set.
type UpdateExpenseRequest struct {
	TripID      string   `json:"tripId"`
	ExpenseID   string   `json:"expenseId"`
	PayerID     *string  `json:"payerId,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"tripId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetSettlementRequest struct {
	TripID string `json:"tripId"`
}

type GetSettlementResponse struct {
	BaseCurrency string     `json:"baseCurrency"`
	Total        float64    `json:"total"`
	Share        float64    `json:"share"`
	Balances     []Balance  `json:"balances"`
	Transfers    []Transfer `json:"transfers"`
	// Unconverted lists currencies counted at face value because no rate was known.
	Unconverted []string `json:"unconverted,omitempty"`
	RatesDate   string   `json:"ratesDate"`
	RatesOrigin string   `json:"ratesOrigin"`
}

// Rate messages.

type GetRatesRequest struct {
	// Base defaults to USD when empty.
	Base string `json:"base"`
}

type GetRatesResponse struct {
	Table *RateTable `json:"table"`
}

type RefreshRatesRequest struct {
	Base string `json:"base"`
}

type RefreshRatesResponse struct {
	Table *RateTable `json:"table"`
}

type ListCurrenciesRequest struct{}

type ListCurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}
