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

type allocationCmd struct {
	model string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "report the current allocation per category" }
func (*allocationCmd) Usage() string {
	return `folio allocation [-model NAME]

  Reports the portfolio value split across categories. With -model the
  report also shows each category's target and deviation.
`
}
func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "model portfolio to compare against")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := LoadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snap := folio.NewSnapshot(s, c.model)
	if c.model != "" && snap.Model == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown model %q\n", c.model)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AllocationMarkdown(snap))
	return subcommands.ExitSuccess
}
