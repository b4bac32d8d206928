package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
)

type setPriceCmd struct {
	currency string
}

func (*setPriceCmd) Name() string     { return "set-price" }
func (*setPriceCmd) Synopsis() string { return "record the price of a symbol" }
func (*setPriceCmd) Usage() string {
	return `folio set-price [-currency CUR] <symbol> <price>

  Records the unit price used to value positions of that symbol.
`
}
func (c *setPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", folio.DefaultCurrency, "currency of the price")
}

func (c *setPriceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a symbol and a price")
		return subcommands.ExitUsageError
	}
	price, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		if err := s.SetPrice(f.Arg(0), folio.M(price, c.currency)); err != nil {
			return err
		}
		fmt.Printf("Set %s price to %s\n", folio.NormalizeSymbol(f.Arg(0)), folio.M(price, c.currency))
		return nil
	})
}

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch latest prices for every known symbol" }
func (*fetchCmd) Usage() string {
	return `folio fetch

  Fetches the latest quote for every symbol known to the store (held
  positions, model stocks and mapped symbols) and records the prices.

  Requires an API key, passed with -quote-api-key or the
  FOLIO_QUOTE_API_KEY environment variable.
`
}
func (*fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return mutate(func(s *folio.Store) error {
		quotes, err := folio.FetchQuotes(s.Symbols())
		if err != nil {
			return err
		}
		for symbol, price := range quotes {
			if err := s.SetPrice(symbol, price); err != nil {
				return err
			}
		}
		fmt.Printf("Fetched %d quotes\n", len(quotes))
		return nil
	})
}
