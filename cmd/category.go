package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
)

type addCategoryCmd struct{}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "declare a new category" }
func (*addCategoryCmd) Usage() string {
	return `folio add-category <name>

  Declares a new category. The category id is derived from the name
  (lowercased, spaces become dashes).
`
}
func (*addCategoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one category name")
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		cat, err := s.AddCategory(f.Arg(0))
		if err != nil {
			return err
		}
		fmt.Printf("Declared category %q (id %q)\n", cat.Name, cat.ID)
		return nil
	})
}

type delCategoryCmd struct{}

func (*delCategoryCmd) Name() string     { return "del-category" }
func (*delCategoryCmd) Synopsis() string { return "delete a category" }
func (*delCategoryCmd) Usage() string {
	return `folio del-category <id>

  Deletes a category. Symbols mapped to it keep the stale mapping and
  resolve to uncategorized until remapped.
`
}
func (*delCategoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *delCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one category id")
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		if err := s.DeleteCategory(f.Arg(0)); err != nil {
			return err
		}
		fmt.Printf("Deleted category %q\n", f.Arg(0))
		return nil
	})
}

type mapCmd struct{}

func (*mapCmd) Name() string     { return "map" }
func (*mapCmd) Synopsis() string { return "map a symbol to a category" }
func (*mapCmd) Usage() string {
	return `folio map <symbol> <category-id>

  Maps a ticker symbol to a declared category. A symbol maps to at most
  one category; mapping it again moves it.
`
}
func (*mapCmd) SetFlags(f *flag.FlagSet) {}

func (c *mapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a symbol and a category id")
		return subcommands.ExitUsageError
	}
	return mutate(func(s *folio.Store) error {
		if err := s.MapStock(f.Arg(0), f.Arg(1)); err != nil {
			return err
		}
		fmt.Printf("Mapped %s to %s\n", folio.NormalizeSymbol(f.Arg(0)), f.Arg(1))
		return nil
	})
}
