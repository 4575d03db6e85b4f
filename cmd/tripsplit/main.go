// Command tripsplit settles a trip described in a JSON file and inspects exchange rates.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsplit/pkg/logging"
)

func main() {
	logging.Setup()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&settleCmd{}, "")
	commander.Register(&ratesCmd{}, "")
	commander.Register(&currenciesCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
