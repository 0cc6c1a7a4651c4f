// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package swd implements a command to write
// the samples-with-data file of a species.
package swd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/datafile"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/swd"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: "swd <project-file> <species>",
	Short: "write a samples-with-data file",
	Long: `
Command swd reads the data table and the list of included variables of a
species, and writes a samples-with-data (SWD) file used as the input of
MaxEnt.

The first argument of the command is the name of the project file.

The second argument is the name of the species.

The SWD file is written in the species folder as <species>_SWD.csv. The first
fields are Species, X, and Y. The Species field is the species name for the
presence catchments, and "background" for the other catchments. The X field
is the GRIDCODE of the catchment, and the Y field is always 0. The remaining
fields are the included variables.
	`,
	Run: run,
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
	species := args[1]
	dir, err := p.SpeciesDir(species, false)
	if err != nil {
		return err
	}

	vars, err := readVars(filepath.Join(dir, project.VarsFile))
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		return fmt.Errorf("species %q: empty variable list", species)
	}
	t, pres, err := readData(filepath.Join(dir, project.DataFile))
	if err != nil {
		return err
	}

	name := filepath.Join(dir, project.SWDFile(species))
	np, nb, err := writeSWD(name, species, t, pres, vars)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d presence, %d background, %d variables\n", name, np, nb, len(vars))
	return nil
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

func writeSWD(name, species string, t *catchment.Table, pres map[int64]bool, vars []string) (np, nb int, err error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	np, nb, err = swd.Write(f, species, t, pres, vars)
	if err != nil {
		return 0, 0, fmt.Errorf("when writing %q: %v", name, err)
	}
	return np, nb, nil
}
