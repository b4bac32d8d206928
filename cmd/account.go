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

type addAccountCmd struct{}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "declare a new account" }
func (*addAccountCmd) Usage() string {
	return `folio add-account <name>

  Declares a new account holding positions, for instance a brokerage
  or a retirement account.
`
}
func (*addAccountCmd) SetFlags(f *flag.FlagSet) {}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one account name")
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		acc, err := s.AddAccount(f.Arg(0))
		if err != nil {
			return err
		}
		fmt.Printf("Declared account %q (id %q)\n", acc.Name, acc.ID)
		return nil
	})
}

type addPositionCmd struct{}

func (*addPositionCmd) Name() string     { return "add-position" }
func (*addPositionCmd) Synopsis() string { return "add shares of a symbol to an account" }
func (*addPositionCmd) Usage() string {
	return `folio add-position <account-id> <symbol> <shares>

  Adds shares to a position. Adding to an existing position merges the
  share counts. Shares may be fractional.
`
}
func (*addPositionCmd) SetFlags(f *flag.FlagSet) {}

func (c *addPositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected an account id, a symbol and a share count")
		return subcommands.ExitUsageError
	}
	shares, err := strconv.ParseFloat(f.Arg(2), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid share count %q: %v\n", f.Arg(2), err)
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		if err := s.AddPosition(f.Arg(0), f.Arg(1), folio.Q(shares)); err != nil {
			return err
		}
		fmt.Printf("Added %v %s to %s\n", shares, folio.NormalizeSymbol(f.Arg(1)), f.Arg(0))
		return nil
	})
}
