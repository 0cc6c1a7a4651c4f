// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package redundant implements a command to remove
// redundant environment variables.
package redundant

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/correlate"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: "redundant [--dry] <project-file> <species>",
	Short: "remove redundant variables",
	Long: `
Command redundant reads the pairs of correlated variables of a species, and
removes one variable of each pair from the list of included variables.

The first argument of the command is the name of the project file.

The second argument is the name of the species. The pairs of correlated
variables must be already calculated (use 'habuplift vars cross').

Pairs are visited from the strongest to the weakest correlation. If none of
the variables of a pair was already removed, the variable with the weakest
correlation with the presence of the species (as found in the
SH_Correlations.csv file) is removed.

The removed variables are written in the species folder as
RedundantVars.csv, and the IncludedVariables.csv file is updated. Use the
flag --dry to only print the removed variables.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var dry bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&dry, "dry", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting species name")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	dir, err := p.SpeciesDir(args[1], false)
	if err != nil {
		return err
	}

	pairs, err := readPairs(filepath.Join(dir, project.RVFile))
	if err != nil {
		return err
	}
	rs, err := readResponses(filepath.Join(dir, project.SHFile))
	if err != nil {
		return err
	}
	varsFile := filepath.Join(dir, project.VarsFile)
	vars, err := readVars(varsFile)
	if err != nil {
		return err
	}

	rm := correlate.Redundant(pairs, rs)
	for _, v := range rm {
		fmt.Fprintf(c.Stdout(), "%s\n", v)
	}
	keep := varlist.Exclude(vars, rm)
	fmt.Fprintf(c.Stderr(), "removed %d variables, %d kept\n", len(rm), len(keep))
	if dry {
		return nil
	}

	if err := writeVars(filepath.Join(dir, project.RedundantFile), rm); err != nil {
		return err
	}
	return writeVars(varsFile, keep)
}

func readPairs(name string) ([]correlate.Pair, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := correlate.ReadPairs(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return pairs, nil
}

func readResponses(name string) ([]correlate.Response, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rs, err := correlate.ReadResponses(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return rs, nil
}

func readVars(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars, err := varlist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return vars, nil
}

func writeVars(name string, vars []string) (err error) {
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

	if err := varlist.Write(f, vars); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
