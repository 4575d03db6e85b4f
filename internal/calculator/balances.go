package calculator

import "github.com/mmynk/tripsplit/internal/models"

// ComputeBalances derives every participant's balance from the expenses.
//
// Algorithm:
// - Convert each expense to the base currency and sum them into the trip total
// - Everyone owes an equal share: total / number of participants
// - paid = sum of the converted expenses a participant paid for
// - balance = paid - share
//
// The result follows the order of participants. No participants yields an empty result.
func ComputeBalances(participants []models.Participant, expenses []models.Expense, baseCurrency string, rates *models.RateTable) []models.ParticipantBalance {
	if len(participants) == 0 {
		return []models.ParticipantBalance{}
	}

	var total float64
	paidBy := make(map[string]float64, len(participants))
	for _, e := range expenses {
		converted := Normalize(e.Amount, e.Currency, baseCurrency, rates)
		total += converted
		paidBy[e.PayerID] += converted
	}

	share := total / float64(len(participants))

	balances := make([]models.ParticipantBalance, len(participants))
	for i, p := range participants {
		paid := paidBy[p.ID]
		balances[i] = models.ParticipantBalance{
			ParticipantID: p.ID,
			Paid:          paid,
			ShouldPay:     share,
			Balance:       paid - share,
		}
	}
	return balances
}

// Total returns the sum of all expenses converted to the base currency.
func Total(expenses []models.Expense, baseCurrency string, rates *models.RateTable) float64 {
	var total float64
	for _, e := range expenses {
		total += Normalize(e.Amount, e.Currency, baseCurrency, rates)
	}
	return total
}
