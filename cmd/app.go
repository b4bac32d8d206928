// Package cmd implements the CLI application to manage a folio store.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/mlep/folio"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFile = flag.String("store", "folio.jsonl", "Path to the store file (JSONL format)")

// Commands lists every subcommand a main package should register.
var Commands = []subcommands.Command{
	&addCategoryCmd{},
	&delCategoryCmd{},
	&mapCmd{},
	&addAccountCmd{},
	&addPositionCmd{},
	&defineModelCmd{},
	&modelsCmd{},
	&setPriceCmd{},
	&fetchCmd{},
	&allocationCmd{},
	&rebalanceCmd{},
	&investCmd{},
	&whatifCmd{},
	&exportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// LoadStore is the central function to open the store file.
// An absent file yields an empty store.
func LoadStore() (*folio.Store, error) {
	f, err := os.Open(*storeFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, store does not exist, starting from an empty store instead")
		return folio.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", *storeFile, err)
	}
	defer f.Close()
	return folio.DecodeStore(f)
}

// SaveStore persists the store back to the store file.
func SaveStore(s *folio.Store) error {
	f, err := os.Create(*storeFile)
	if err != nil {
		return fmt.Errorf("cannot create store %q: %w", *storeFile, err)
	}
	if err := folio.EncodeStore(f, s); err != nil {
		f.Close()
		return fmt.Errorf("cannot write store %q: %w", *storeFile, err)
	}
	return f.Close()
}

// mutate loads the store, applies fn, and saves it back on success.
func mutate(fn func(s *folio.Store) error) subcommands.ExitStatus {
	s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := fn(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveStore(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving store: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
