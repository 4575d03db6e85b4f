// Package report renders a trip settlement as Markdown.
package report

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/currency"
	"github.com/mmynk/tripsplit/internal/models"
)

// Settlement is everything the report shows.
type Settlement struct {
	Title        string
	Participants []models.Participant
	Expenses     []models.Expense
	Summary      calculator.Summary
	RatesDate    string
	RatesOrigin  string
}

// Markdown renders s: overview, balances, transfers and the expense log.
func Markdown(s Settlement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	base := s.Summary.BaseCurrency
	names := newNameIndex(s.Participants)

	title := s.Title
	if title == "" {
		title = "Settlement"
	}
	doc.H1(title)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total"), md.Bold(currency.Format(s.Summary.Total, base))},
		Rows: [][]string{
			{"Per person", currency.Format(s.Summary.Share, base)},
			{"Participants", fmt.Sprint(len(s.Participants))},
			{"Expenses", fmt.Sprint(len(s.Expenses))},
			{"Rates", ratesLabel(s.RatesDate, s.RatesOrigin)},
		},
	})

	if len(s.Summary.Unconverted) > 0 {
		doc.PlainText(fmt.Sprintf("%s no exchange rate for %v; those amounts are counted at face value.",
			md.Bold("Warning:"), s.Summary.Unconverted))
	}

	if len(s.Summary.Balances) > 0 {
		doc.H2("Balances")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Participant", "Paid", "Share", "Balance"},
		}
		for _, b := range s.Summary.Balances {
			table.Rows = append(table.Rows, []string{
				names.of(b.ParticipantID),
				currency.Format(b.Paid, base),
				currency.Format(b.ShouldPay, base),
				signed(b.Balance, base),
			})
		}
		doc.Table(table)
	}

	doc.H2("Transfers")
	if len(s.Summary.Transfers) == 0 {
		doc.PlainText("Everyone is settled up.")
	} else {
		var lines []string
		for _, t := range s.Summary.Transfers {
			lines = append(lines, fmt.Sprintf("%s pays %s %s",
				md.Bold(nameOr(t.From)), md.Bold(nameOr(t.To)), currency.Format(t.Amount, t.Currency)))
		}
		doc.OrderedList(lines...)
	}

	if len(s.Expenses) > 0 {
		doc.H2("Expenses")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Date", "Paid by", "Description", "Amount"},
		}
		for _, e := range s.Expenses {
			table.Rows = append(table.Rows, []string{
				e.Date,
				names.of(e.PayerID),
				e.Description,
				currency.Format(e.Amount, e.Currency),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

type nameIndex map[string]string

func newNameIndex(participants []models.Participant) nameIndex {
	idx := make(nameIndex, len(participants))
	for _, p := range participants {
		idx[p.ID] = p.Name
	}
	return idx
}

// of returns the participant name, or the ID for unknown participants.
func (n nameIndex) of(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id
}

func nameOr(p models.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func signed(amount float64, code string) string {
	amount = calculator.Round2(amount)
	if amount > 0 {
		return "+" + currency.Format(amount, code)
	}
	return currency.Format(amount, code)
}

func ratesLabel(date, origin string) string {
	switch {
	case date == "" && origin == "":
		return "n/a"
	case origin == "":
		return date
	default:
		return fmt.Sprintf("%s (%s)", date, origin)
	}
}
