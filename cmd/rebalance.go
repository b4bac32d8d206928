package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
	"github.com/mlep/folio/renderer"
)

type rebalanceCmd struct {
	model string
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "suggest sells and buys to match a model" }
func (*rebalanceCmd) Usage() string {
	return `folio rebalance -model NAME

  Suggests whole-share sells and buys to bring the allocation back to
  the model's targets. Sells are listed before buys.
`
}
func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "model portfolio to rebalance against")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.model == "" {
		fmt.Fprintln(os.Stderr, "Error: -model is required")
		return subcommands.ExitUsageError
	}
	s, err := LoadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snap := folio.NewSnapshot(s, c.model)
	if snap.Model == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown model %q\n", c.model)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SuggestionsMarkdown(snap))
	return subcommands.ExitSuccess
}
