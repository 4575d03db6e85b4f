package calculator

import "github.com/mmynk/tripsplit/internal/models"

// Summary is the full settlement of a trip in one base currency.
type Summary struct {
	BaseCurrency string                      `json:"baseCurrency"`
	Total        float64                     `json:"total"`
	Share        float64                     `json:"share"`
	Balances     []models.ParticipantBalance `json:"balances"`
	Transfers    []models.SettlementTransfer `json:"transfers"`
	// Unconverted lists expense currencies counted at face value for lack of a rate.
	Unconverted []string `json:"unconverted,omitempty"`
}

// Settle runs the whole pipeline: normalize, compute balances, simplify.
func Settle(participants []models.Participant, expenses []models.Expense, baseCurrency string, rates *models.RateTable) Summary {
	balances := ComputeBalances(participants, expenses, baseCurrency, rates)

	var share float64
	if len(balances) > 0 {
		share = balances[0].ShouldPay
	}

	return Summary{
		BaseCurrency: baseCurrency,
		Total:        Total(expenses, baseCurrency, rates),
		Share:        share,
		Balances:     balances,
		Transfers:    Simplify(participants, balances, baseCurrency),
		Unconverted:  Unconvertible(expenses, baseCurrency, rates),
	}
}
