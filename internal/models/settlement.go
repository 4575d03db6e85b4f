package models

// ParticipantBalance is one participant's position in the trip, in the base currency.
// It is derived from the expenses on every computation and never stored.
type ParticipantBalance struct {
	// ParticipantID is the participant this balance belongs to.
	ParticipantID string `json:"participantId"`

	// Paid is the total this participant paid, converted to the base currency.
	Paid float64 `json:"paid"`

	// ShouldPay is the participant's equal share of the trip total.
	ShouldPay float64 `json:"shouldPay"`

	// Balance is Paid - ShouldPay.
	// Positive = the group owes them money, Negative = they owe the group.
	Balance float64 `json:"balance"`
}

// SettlementTransfer is one instruction: From sends Amount to To.
type SettlementTransfer struct {
	// From is the debtor paying.
	From Participant `json:"fromParticipant"`

	// To is the creditor receiving.
	To Participant `json:"toParticipant"`

	// Amount is rounded to 2 decimals.
	Amount float64 `json:"amount"`

	// Currency is always the base currency the settlement was computed in.
	Currency string `json:"currency"`
}
