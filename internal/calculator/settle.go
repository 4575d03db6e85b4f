package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// party is a creditor or debtor still to be matched.
type party struct {
	participant models.Participant
	remaining   decimal.Decimal // always positive, in cents
}

// Simplify turns balances into a list of transfers that settles everyone.
//
// Algorithm (greedy, largest outstanding first):
// - Creditors have balance > 0.01, debtors balance < -0.01; the rest are settled
// - Both sides are rounded to cents and sorted by amount, largest first (stable)
// - Repeatedly match the current largest debtor with the current largest creditor
//   for min(debt, credit), moving past whoever drops below one cent
//
// Greedy matching does not always reach the minimum number of transfers but is
// deterministic for a given input order. Residue below one cent is dropped.
func Simplify(participants []models.Participant, balances []models.ParticipantBalance, baseCurrency string) []models.SettlementTransfer {
	byID := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	lookup := func(id string) models.Participant {
		if p, ok := byID[id]; ok {
			return p
		}
		return models.Participant{ID: id}
	}

	var creditors, debtors []*party
	for _, b := range balances {
		if b.Balance > Tolerance {
			creditors = append(creditors, &party{participant: lookup(b.ParticipantID), remaining: cents(b.Balance)})
		} else if b.Balance < -Tolerance {
			debtors = append(debtors, &party{participant: lookup(b.ParticipantID), remaining: cents(-b.Balance)})
		}
	}

	sortDescending(creditors)
	sortDescending(debtors)

	transfers := []models.SettlementTransfer{}
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := creditors[i]
		debtor := debtors[j]

		amount := decimal.Min(creditor.remaining, debtor.remaining)
		if amount.GreaterThan(tolerance) {
			transfers = append(transfers, models.SettlementTransfer{
				From:     debtor.participant,
				To:       creditor.participant,
				Amount:   amount.Round(2).InexactFloat64(),
				Currency: baseCurrency,
			})
		}

		creditor.remaining = creditor.remaining.Sub(amount)
		debtor.remaining = debtor.remaining.Sub(amount)

		if creditor.remaining.LessThan(tolerance) {
			i++
		}
		if debtor.remaining.LessThan(tolerance) {
			j++
		}
	}

	return transfers
}

func sortDescending(parties []*party) {
	sort.SliceStable(parties, func(a, b int) bool {
		return parties[a].remaining.GreaterThan(parties[b].remaining)
	})
}
