package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
	"github.com/mlep/folio/renderer"
)

type investCmd struct {
	model  string
	amount float64
	only   string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "plan buy-only purchases for fresh cash" }
func (*investCmd) Usage() string {
	return `folio invest -model NAME -amount CASH [-only SYM1,SYM2]

  Plans whole-share purchases for fresh cash without selling anything.
  Cash goes to underweight categories in proportion to their shortfall.

  With -only, only the listed symbols are considered for purchase; cash
  from categories they cannot serve flows to the others.
`
}
func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "model portfolio to invest towards")
	f.Float64Var(&c.amount, "amount", 0, "cash amount to invest")
	f.StringVar(&c.only, "only", "", "comma-separated symbols to restrict purchases to")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.model == "" {
		fmt.Fprintln(os.Stderr, "Error: -model is required")
		return subcommands.ExitUsageError
	}
	if c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -amount must be positive")
		return subcommands.ExitUsageError
	}
	s, err := LoadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	model, ok := s.Model(c.model)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown model %q\n", c.model)
		return subcommands.ExitFailure
	}
	amount := folio.USD(c.amount)
	var selected []string
	for _, sym := range strings.Split(c.only, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			selected = append(selected, sym)
		}
	}
	var plan folio.BuyOnlyPlan
	if selected == nil {
		plan = folio.SuggestBuyOnly(amount, model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
	} else {
		plan = folio.SuggestBuyOnlySelected(amount, model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices(), selected)
	}
	printMarkdown(renderer.InvestMarkdown(amount, plan, s.Categories()))
	return subcommands.ExitSuccess
}
