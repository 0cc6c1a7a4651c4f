// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package summary implements a command to summarize
// the uplift of the species
// in each catchment.
package summary

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/uplift"
)

var Command = &command.Command{
	Usage: `summary [--high <value>] [--low <value>]
	[-o|--output <file>] <uplift-file>`,
	Short: "summarize the uplift of the species",
	Long: `
Command summary reads a merged uplift table and adds the following fields to
each catchment:

	minUplift  the minimum uplift of the species
	maxUplift  the maximum uplift of the species
	rngUplift  the range of the uplift (maxUplift - minUplift)
	pctAbove   proportion of species with an uplift above the high threshold
	pctBelow   proportion of species with an uplift below the low threshold

The argument of the command is the merged uplift table (use
'habuplift uplift merge').

By default the high threshold is 0.1, and the low threshold is -0.1. Use the
flags --high and --low to set different values.

By default, the input file is replaced. Use the flag --output, or -o, to
define a different output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var high float64
var low float64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&high, "high", 0.1, "")
	c.Flags().Float64Var(&low, "low", -0.1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting uplift file")
	}
	if low > high {
		return c.UsageError(fmt.Sprintf("flag --low (%.6f) larger than --high (%.6f)", low, high))
	}

	name := args[0]
	t, err := readTable(name)
	if err != nil {
		return err
	}
	if err := t.Summary(high, low); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	if output == "" {
		output = name
	}
	return writeTable(output, t)
}

func readTable(name string) (*uplift.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := uplift.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

func writeTable(name string, t *uplift.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := t.WriteCSV(f); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
