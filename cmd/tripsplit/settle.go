package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/report"
	"github.com/mmynk/tripsplit/internal/validation"
)

type settleCmd struct {
	file    string
	base    string
	title   string
	offline bool
	plain   bool
	source  rateFlags
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "compute who pays whom for a trip" }
func (*settleCmd) Usage() string {
	return `tripsplit settle -f <trip.json> [-base <currency>] [-offline] [-plain]

  Reads a trip state file and prints balances and the transfers that settle them.
  Rates come from the file when present, otherwise from the rate provider,
  otherwise from the built-in table.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "trip state file (JSON)")
	f.StringVar(&c.base, "base", "", "settle in this currency instead of the file's baseCurrency")
	f.StringVar(&c.title, "title", "", "report title (defaults to the file name)")
	f.BoolVar(&c.offline, "offline", false, "never contact the rate provider")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
	c.source.register(f)
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required")
		return subcommands.ExitUsageError
	}
	if c.base != "" {
		if err := validation.Currency(c.base); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -base: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	t, err := loadState(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.base != "" {
		t.baseCurrency = c.base
	}

	snap := c.rates(ctx, t)
	summary := calculator.Settle(t.participants, t.expenses, t.baseCurrency, snap.Table)

	title := c.title
	if title == "" {
		title = "Settlement: " + c.file
	}
	printMarkdown(report.Markdown(report.Settlement{
		Title:        title,
		Participants: t.participants,
		Expenses:     t.expenses,
		Summary:      summary,
		RatesDate:    snap.Table.Date,
		RatesOrigin:  string(snap.Origin),
	}), c.plain)
	return subcommands.ExitSuccess
}

// rates picks the file's table, then the provider, then the built-in table.
func (c *settleCmd) rates(ctx context.Context, t *trip) rates.Snapshot {
	if t.rates != nil {
		return rates.Snapshot{Table: t.rates, Origin: originFile}
	}
	if c.offline || !needsConversion(t) {
		return rates.Snapshot{Table: rates.Fallback(time.Now()), Origin: rates.OriginFallback}
	}
	return c.source.supplier().Rates(ctx, t.baseCurrency)
}

// originFile marks rates read from the state file.
const originFile rates.Origin = "file"

// needsConversion reports whether any expense is in a currency other than the base.
func needsConversion(t *trip) bool {
	for _, e := range t.expenses {
		if e.Currency != t.baseCurrency {
			return true
		}
	}
	return false
}

// rateFlags configures the rate provider used by commands that fetch rates.
type rateFlags struct {
	url     string
	timeout time.Duration
}

func (r *rateFlags) register(f *flag.FlagSet) {
	f.StringVar(&r.url, "rates-url", envOr("RATES_URL", rates.DefaultURL), "exchange rate provider endpoint")
	f.DurationVar(&r.timeout, "rates-timeout", 10*time.Second, "rate provider request timeout")
}

func (r *rateFlags) supplier() *rates.Supplier {
	return rates.NewSupplier(rates.NewHTTPSource(r.url, r.timeout), nil, rates.DefaultTTL)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

