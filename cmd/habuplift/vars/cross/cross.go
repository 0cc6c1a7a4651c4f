// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cross implements a command to find
// pairs of correlated environment variables.
package cross

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/correlate"
	"github.com/js-arias/habuplift/datafile"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/runlog"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: "cross [--threshold <value>] [--verbose] <project-file> <species>",
	Short: "find pairs of correlated variables",
	Long: `
Command cross reads the data table and the list of included variables of a
species, and calculates the Pearson correlation for each pair of included
variables.

The first argument of the command is the name of the project file.

The second argument is the name of the species. The list of included
variables must be already defined (use 'habuplift vars sh').

Pairs with an absolute correlation equal or larger than 0.7 are written in
the species folder as RV_Correlations.csv. Use the flag --threshold to set a
different threshold.

Use the flag --verbose, or -v, to print the progress of the command.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var threshold float64
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&threshold, "threshold", 0.7, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting species name")
	}
	if threshold <= 0 || threshold > 1 {
		return c.UsageError(fmt.Sprintf("flag --threshold: invalid value %.6f", threshold))
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	species := args[1]
	dir, err := p.SpeciesDir(species, false)
	if err != nil {
		return err
	}

	lg := runlog.New(c.Stderr(), verbose)
	defer func() {
		e := lg.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	vars, err := readVars(filepath.Join(dir, project.VarsFile))
	if err != nil {
		return err
	}
	t, err := readData(filepath.Join(dir, project.DataFile))
	if err != nil {
		return err
	}
	lg.Info("variables to analyze", "vars", len(vars), "catchments", t.Len())

	pairs, err := correlate.Pairs(t, vars, threshold)
	if err != nil {
		return err
	}

	name := filepath.Join(dir, project.RVFile)
	if err := lg.Metadata(runlog.MetadataName(name), species+" cross correlations"); err != nil {
		return err
	}
	lg.Note("correlation threshold", "threshold", threshold)
	lg.Note("correlated pairs", "pairs", len(pairs), "vars", len(vars))

	return writePairs(name, pairs)
}

func readData(name string) (*catchment.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, _, err := datafile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
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

func writePairs(name string, pairs []correlate.Pair) (err error) {
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

	if err := correlate.WritePairs(f, pairs); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
