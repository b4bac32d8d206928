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

type whatifCmd struct {
	model string
}

func (*whatifCmd) Name() string     { return "whatif" }
func (*whatifCmd) Synopsis() string { return "simulate trades against the current allocation" }
func (*whatifCmd) Usage() string {
	return `folio whatif -model NAME <ACTION:CATEGORY:AMOUNT ...>

  Simulates category-level trades and reports the allocation that would
  result. Nothing is stored.

    folio whatif -model growth buy:tech:500 sell:finance:200
`
}
func (c *whatifCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "model portfolio to compare the result against")
}

func parseTrade(arg string) (folio.Trade, error) {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 {
		return folio.Trade{}, fmt.Errorf("%q is not an ACTION:CATEGORY:AMOUNT trade", arg)
	}
	var action folio.Action
	switch parts[0] {
	case "buy":
		action = folio.Buy
	case "sell":
		action = folio.Sell
	default:
		return folio.Trade{}, fmt.Errorf("unknown action %q, want buy or sell", parts[0])
	}
	amount, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return folio.Trade{}, fmt.Errorf("invalid amount in %q: %v", arg, err)
	}
	return folio.Trade{Category: parts[1], Action: action, Amount: folio.USD(amount)}, nil
}

func (c *whatifCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.model == "" {
		fmt.Fprintln(os.Stderr, "Error: -model is required")
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected at least one trade")
		return subcommands.ExitUsageError
	}
	var trades []folio.Trade
	for _, arg := range f.Args() {
		trade, err := parseTrade(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		trades = append(trades, trade)
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
	target := folio.ModelAllocation(model, s.Mapping(), s.Categories())
	result := folio.Simulate(trades, s.Allocation(), s.TotalValue(), target, s.Categories())
	printMarkdown(renderer.WhatIfMarkdown(trades, result, s.Categories()))
	return subcommands.ExitSuccess
}
