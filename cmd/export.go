package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
)

type exportCmd struct {
	format string
	model  string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a snapshot of the store and reports" }
func (*exportCmd) Usage() string {
	return `folio export [-format json|csv] [-model NAME] [-o FILE]

  Exports a snapshot of the store together with everything computed
  from it. With -model, targets, deviations and rebalancing suggestions
  are included. Writes to stdout unless -o is given.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "export format, json or csv")
	f.StringVar(&c.model, "model", "", "model portfolio to report against")
	f.StringVar(&c.output, "o", "", "write to this file instead of stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	switch c.format {
	case "json":
		err = folio.ExportJSON(w, snap)
	case "csv":
		err = folio.ExportCSV(w, snap)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want json or csv\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
