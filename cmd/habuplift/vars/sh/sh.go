// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sh implements a command to correlate
// the presence of a species
// with each environment variable.
package sh

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
	Usage: "sh [--alpha <value>] [--verbose] <project-file> <species>",
	Short: "correlate species presence with environment variables",
	Long: `
Command sh reads the data table of a species and calculates the Pearson
correlation between the presence of the species (1 for presence catchments, 0
for background catchments) and each environment variable, as well as the
two-sided significance of the correlation.

The first argument of the command is the name of the project file.

The second argument is the name of the species. The data table of the species
must be already built (use 'habuplift data build').

Variables with a p-value smaller or equal to 0.05 are kept. Use the flag
--alpha to set a different significance level. Variables with an undefined
correlation (for example, a variable with a constant value) are always
removed.

The correlations of the kept variables are written in the species folder as
SH_Correlations.csv, and the list of kept variables as IncludedVariables.csv.

Use the flag --verbose, or -v, to print the progress of the command.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var alphaFlag float64
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&alphaFlag, "alpha", correlate.Alpha, "")
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
	if alphaFlag <= 0 || alphaFlag >= 1 {
		return c.UsageError(fmt.Sprintf("flag --alpha: invalid value %.6f", alphaFlag))
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

	t, pres, err := readData(filepath.Join(dir, project.DataFile))
	if err != nil {
		return err
	}
	lg.Info("data table", "catchments", t.Len(), "presence", len(pres), "fields", len(t.Fields()))

	response := make([]float64, t.Len())
	for i, id := range t.GridCodes() {
		if pres[id] {
			response[i] = 1
		}
	}
	rs, err := correlate.Responses(response, t, t.Fields())
	if err != nil {
		return err
	}
	keep, drop := correlate.Significant(rs, alphaFlag)

	name := filepath.Join(dir, project.SHFile)
	if err := lg.Metadata(runlog.MetadataName(name), species+" species-habitat correlations"); err != nil {
		return err
	}
	lg.Note("significance level", "alpha", alphaFlag)
	for _, r := range drop {
		lg.Note("variable removed", "var", r.Var, "coef", r.Coef, "p", r.P)
	}
	lg.Note("variables kept", "kept", len(keep), "removed", len(drop))
	if len(keep) == 0 {
		lg.Warn("no variable correlated with species presence", "species", species)
	}

	if err := writeResponses(name, keep); err != nil {
		return err
	}

	vars := make([]string, 0, len(keep))
	for _, r := range keep {
		vars = append(vars, r.Var)
	}
	return writeVars(filepath.Join(dir, project.VarsFile), vars)
}

func readData(name string) (*catchment.Table, map[int64]bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	t, pres, err := datafile.Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, pres, nil
}

func writeResponses(name string, rs []correlate.Response) (err error) {
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

	if err := correlate.WriteResponses(f, rs); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
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
