package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/tripsplit/internal/currency"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/validation"
)

type ratesCmd struct {
	base    string
	offline bool
	plain   bool
	source  rateFlags
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show current exchange rates" }
func (*ratesCmd) Usage() string {
	return `tripsplit rates [-base <currency>] [-offline]

  Prints the exchange rates of the supported currencies against the base.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", currency.Default, "base currency")
	f.BoolVar(&c.offline, "offline", false, "show the built-in table")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
	c.source.register(f)
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validation.Currency(c.base); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -base: %v\n", err)
		return subcommands.ExitUsageError
	}

	var snap rates.Snapshot
	if c.offline {
		snap = rates.Snapshot{Table: rates.Fallback(time.Now()), Origin: rates.OriginFallback}
	} else {
		snap = c.source.supplier().Rates(ctx, c.base)
	}

	printMarkdown(ratesMarkdown(c.base, snap), c.plain)
	return subcommands.ExitSuccess
}

// ratesMarkdown lists how many units of each supported currency one unit of base buys.
func ratesMarkdown(base string, snap rates.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Exchange rates for 1 %s", base))
	doc.PlainText(fmt.Sprintf("As of %s (%s).", snap.Table.Date, snap.Origin))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Code", "Currency", "Rate"},
	}
	codes := make([]string, 0, len(snap.Table.Rates))
	for code := range snap.Table.Rates {
		if code != base && currency.Supported(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		rate := crossRate(base, code, snap.Table)
		table.Rows = append(table.Rows, []string{code, currency.Name(code), strconv.FormatFloat(rate, 'f', 4, 64)})
	}
	doc.Table(table)
	return doc.String()
}

// crossRate converts one unit of base into code through the table's own base.
func crossRate(base, code string, table *models.RateTable) float64 {
	from, okFrom := table.Rate(base)
	to, okTo := table.Rate(code)
	if !okFrom || !okTo {
		return 0
	}
	return to / from
}
