package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
	"github.com/mlep/folio/renderer"
)

type defineModelCmd struct{}

func (*defineModelCmd) Name() string     { return "define-model" }
func (*defineModelCmd) Synopsis() string { return "define or replace a model portfolio" }
func (*defineModelCmd) Usage() string {
	return `folio define-model <name> SYMBOL=PERCENT [SYMBOL=PERCENT ...]

  Defines a model portfolio, the target allocation the other commands
  compare against. Targets must sum to 100.

    folio define-model growth AAPL=40 MSFT=40 JPM=20

  Defining an existing model replaces its stocks.
`
}
func (*defineModelCmd) SetFlags(f *flag.FlagSet) {}

func (c *defineModelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a model name and at least one SYMBOL=PERCENT pair")
		return subcommands.ExitUsageError
	}
	var stocks []folio.ModelStock
	for _, arg := range f.Args()[1:] {
		symbol, target, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %q is not a SYMBOL=PERCENT pair\n", arg)
			return subcommands.ExitUsageError
		}
		pct, err := strconv.ParseFloat(target, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid target in %q: %v\n", arg, err)
			return subcommands.ExitUsageError
		}
		stocks = append(stocks, folio.ModelStock{Symbol: symbol, Target: folio.Percent(pct)})
	}
	return mutate(func(s *folio.Store) error {
		if err := s.DefineModel(f.Arg(0), stocks); err != nil {
			return err
		}
		fmt.Printf("Defined model %q with %d stocks\n", f.Arg(0), len(stocks))
		return nil
	})
}

type modelsCmd struct{}

func (*modelsCmd) Name() string     { return "models" }
func (*modelsCmd) Synopsis() string { return "list defined model portfolios" }
func (*modelsCmd) Usage() string {
	return `folio models

  Lists the defined model portfolios and their target allocations.
`
}
func (*modelsCmd) SetFlags(f *flag.FlagSet) {}

func (c *modelsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := LoadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ModelsMarkdown(s.Models()))
	return subcommands.ExitSuccess
}
