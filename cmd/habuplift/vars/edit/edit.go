// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package edit implements a command to edit
// the list of included variables of a species.
package edit

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/datafile"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: `edit [--add <list>] [--remove <list>]
	<project-file> <species>`,
	Short: "edit the list of included variables",
	Long: `
Command edit adds or removes variables from the list of included variables of
a species. The resulting list is printed on the standard output.

The first argument of the command is the name of the project file.

The second argument is the name of the species.

Use the flag --remove to define the variables to be removed, and the flag
--add to define the variables to be added, both as a list separated by commas.
Added variables must be fields of the data table of the species. Variables
are removed before the new variables are added. If no flag is defined, the
list is only printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFlag string
var removeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFlag, "add", "", "")
	c.Flags().StringVar(&removeFlag, "remove", "", "")
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

	name := filepath.Join(dir, project.VarsFile)
	vars, err := readVars(name)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	add := varlist.Split(addFlag)
	rm := varlist.Split(removeFlag)

	if len(add) > 0 {
		t, err := readData(filepath.Join(dir, project.DataFile))
		if err != nil {
			return err
		}
		for _, v := range add {
			if _, ok := t.Index(v); !ok {
				return fmt.Errorf("variable %q not in data table", v)
			}
		}
	}

	vars = varlist.Exclude(vars, rm)
	for _, v := range add {
		if slices.Contains(vars, v) {
			continue
		}
		vars = append(vars, v)
	}

	if err := varlist.Write(c.Stdout(), vars); err != nil {
		return err
	}
	if len(add) == 0 && len(rm) == 0 {
		return nil
	}
	return writeVars(name, vars)
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
