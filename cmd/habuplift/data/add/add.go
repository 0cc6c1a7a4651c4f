// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add a dataset
// to a habuplift project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/aggregate"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/project"
)

var Command = &command.Command{
	Usage: "add --type <dataset> <project-file> <path>",
	Short: "add a dataset to a project",
	Long: `
Command add adds the path of a dataset to a habuplift project.

The first argument of the command is the name of the project file. If no
project exists, a new project will be created.

The second argument is the path of the dataset. If the dataset is already
defined in the project, its path will be replaced by the new path. Tables are
read before being added to the project, so an invalid table will not be
added.

The type of the dataset must be explicitly defined using the flag --type with
one of the following values:

	species  for the species table
	envvars  for the environment variables table
	huc12    for the GRIDCODE to HUC12 lookup table
	maxent   for the maxent.jar file
	stats    for the root folder of species outputs (it will be created
	         if it does not exist)

Use 'habuplift help project-files' to learn more about the datasets.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var typeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&typeFlag, "type", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting dataset path")
	}
	if typeFlag == "" {
		return c.UsageError("flag --type undefined")
	}

	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	path := args[1]
	d, err := project.ParseDataset(typeFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --type: %v", err))
	}
	switch d {
	case project.Species, project.EnvVars:
		t, err := readTable(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stderr(), "%s: %d catchments, %d fields\n", d, t.Len(), len(t.Fields()))
	case project.HUC12:
		if err := readLookup(path); err != nil {
			return err
		}
	case project.MaxEnt:
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("maxent jar: %v", err)
		}
	case project.Stats:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return err
		}
	}

	p.Add(d, path)
	p.SetName(pFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		return project.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTable(name string) (*catchment.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := catchment.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

func readLookup(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := aggregate.ReadLookup(f, aggregate.HUC12Field); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
