// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package build implements a command to build
// the data table of a species.
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/datafile"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/runlog"
)

var Command = &command.Command{
	Usage: "build [--verbose] <project-file> <species>",
	Short: "build the data table of a species",
	Long: `
Command build reads the species and the environment variables tables of a
project, and writes the data table of a species, with its presence catchments
and the background catchments of the HUC8 units in which the species is
found.

The first argument of the command is the name of the project file.

The second argument is the name of the species, as used in the species table
(for example "Notropis_alborus").

The data table will be written in the species folder (inside the stats folder
of the project) as AllHUC8Records.csv. The presence records are written first
with 1 in the Species field, followed by the background records with 0.
Fields with missing values (-9999, -9998, or empty) are removed, as well as
the Shape_Length and Shape_Area fields. A metadata file
(AllHUC8Records_metadata.txt) records the HUC units and the removed fields.

Use the flag --verbose, or -v, to print the progress of the command.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var verbose bool

func setFlags(c *command.Command) {
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

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	species := args[1]

	lg := runlog.New(c.Stderr(), verbose)
	defer func() {
		e := lg.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	occ, err := p.Species()
	if err != nil {
		return err
	}
	lg.Info("species table", "catchments", occ.Len())
	env, err := p.EnvVars()
	if err != nil {
		return err
	}
	lg.Info("environment table", "catchments", env.Len(), "fields", len(env.Fields()))

	d, err := datafile.Build(species, occ, env)
	if err != nil {
		return err
	}

	dir, err := p.SpeciesDir(species, true)
	if err != nil {
		return err
	}
	name := filepath.Join(dir, project.DataFile)
	if err := lg.Metadata(runlog.MetadataName(name), species+" data table"); err != nil {
		return err
	}

	lg.Note("hydrologic units", "huc6", strings.Join(d.HUC6.Codes(), " "))
	lg.Note("hydrologic units", "huc8", strings.Join(d.HUC8.Codes(), " "))
	if len(d.NoData) > 0 {
		lg.Note("fields with missing values", "removed", strings.Join(d.NoData, " "))
	}
	for _, id := range d.Missing {
		lg.Warn("presence catchment without environment data", "gridcode", id)
	}

	pres, back, err := writeData(name, d)
	if err != nil {
		return err
	}
	lg.Note("records written", "file", name, "presence", pres, "background", back)
	if pres == 0 {
		lg.Warn("no presence record with environment data", "species", species)
	}
	return nil
}

func writeData(name string, d *datafile.Data) (pres, back int, err error) {
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

	pres, back, err = d.Write(f)
	if err != nil {
		return 0, 0, fmt.Errorf("when writing %q: %v", name, err)
	}
	return pres, back, nil
}
