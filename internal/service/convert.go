package service

import (
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	return &api.Trip{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.BaseCurrency,
		CreatedAt:    t.CreatedAt,
	}
}

func toAPIParticipant(p *models.Participant) *api.Participant {
	return &api.Participant{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toAPIRateTable(s rates.Snapshot) *api.RateTable {
	return &api.RateTable{
		Base:      s.Table.Base,
		Date:      s.Table.Date,
		Rates:     s.Table.Rates,
		FetchedAt: s.Table.FetchedAt,
		Origin:    string(s.Origin),
	}
}

// toAPISettlement flattens a summary, resolving participant names.
func toAPISettlement(sum calculator.Summary, participants []models.Participant, snap rates.Snapshot) *api.GetSettlementResponse {
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	balances := make([]api.Balance, len(sum.Balances))
	for i, b := range sum.Balances {
		balances[i] = api.Balance{
			ParticipantID:   b.ParticipantID,
			ParticipantName: names[b.ParticipantID],
			Paid:            calculator.Round2(b.Paid),
			ShouldPay:       calculator.Round2(b.ShouldPay),
			Balance:         calculator.Round2(b.Balance),
		}
	}

	transfers := make([]api.Transfer, len(sum.Transfers))
	for i, t := range sum.Transfers {
		transfers[i] = api.Transfer{
			FromParticipantID: t.From.ID,
			FromName:          t.From.Name,
			ToParticipantID:   t.To.ID,
			ToName:            t.To.Name,
			Amount:            t.Amount,
			Currency:          t.Currency,
		}
	}

	return &api.GetSettlementResponse{
		BaseCurrency: sum.BaseCurrency,
		Total:        calculator.Round2(sum.Total),
		Share:        calculator.Round2(sum.Share),
		Balances:     balances,
		Transfers:    transfers,
		Unconverted:  sum.Unconverted,
		RatesDate:    snap.Table.Date,
		RatesOrigin:  string(snap.Origin),
	}
}
