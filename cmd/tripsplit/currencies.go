package main

import (
	"bytes"
	"context"
	"flag"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/tripsplit/internal/currency"
)

type currenciesCmd struct {
	plain bool
}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "list supported currencies" }
func (*currenciesCmd) Usage() string {
	return `tripsplit currencies [-plain]
`
}

func (c *currenciesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *currenciesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(currenciesMarkdown(), c.plain)
	return subcommands.ExitSuccess
}

func currenciesMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Supported currencies")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Code", "Name", "Symbol", "Example"},
	}
	for _, c := range currency.All() {
		table.Rows = append(table.Rows, []string{c.Code, c.Name, c.Symbol, currency.Format(1234.5, c.Code)})
	}
	doc.Table(table)
	return doc.String()
}

