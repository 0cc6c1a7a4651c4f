// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements a command to write
// the projection layers of a scenario
// for a species.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/huc"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/scenario"
	"github.com/js-arias/habuplift/swd"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: `project [--name <scenario>] [--huc <list>]
	[--scenario <file> | --table <file>] [--reuse]
	<project-file> <species>`,
	Short: "write projection layers of a scenario",
	Long: `
Command project writes the environment variables of a set of catchments as
projection layers for a species, as well as a MaxEnt batch file that projects
the species model into these layers.

The first argument of the command is the name of the project file.

The second argument is the name of the species. The SWD file and the batch
file of the species must be already written (use 'habuplift maxent swd' and
'habuplift maxent batch').

By default, the values are taken from the environment variables table of the
project, and the name of the scenario must be given with the flag --name
(use "XX" for the current conditions). Use the flag --table to read the values
from a different catchment table. Use the flag --scenario to read a scenario
file (see 'habuplift help scenario-files'); the scenario changes are applied
to the environment variables table, and the name of the scenario is used as
the scenario name.

Use the flag --huc to define a list of hydrologic unit codes, separated by
commas, so only the catchments with a reach code that starts with one of the
codes are used.

The layers are written in the folder <scenario>_Output of the species, one
ASCII grid for each variable of the SWD file, and an additional GRIDCODE.asc
grid with the ID of each catchment. If the folder already exists, it will be
renamed as <scenario>_Output_OLD, unless the flag --reuse is set.

The batch file is written as <scenario>_RunMaxent.bat. It is a copy of the
RunMaxent.bat file of the species with the output directory and the
projection layers set to the scenario folder. Use
'habuplift maxent run --scenario <scenario>' to execute it.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var nameFlag string
var hucFlag string
var scenarioFlag string
var tableFlag string
var reuse bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&nameFlag, "name", "", "")
	c.Flags().StringVar(&hucFlag, "huc", "", "")
	c.Flags().StringVar(&scenarioFlag, "scenario", "", "")
	c.Flags().StringVar(&tableFlag, "table", "", "")
	c.Flags().BoolVar(&reuse, "reuse", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting species name")
	}
	if scenarioFlag != "" && tableFlag != "" {
		return c.UsageError("flags --scenario and --table are exclusive")
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

	t, name, err := sourceTable(c, p)
	if err != nil {
		return err
	}
	if codes := varlist.Split(hucFlag); len(codes) > 0 {
		t = t.WithHUC(huc.NewSet(codes...))
	}
	if t.Len() == 0 {
		return fmt.Errorf("scenario %q: no catchments", name)
	}

	fields, err := readHeader(filepath.Join(dir, project.SWDFile(species)))
	if err != nil {
		return err
	}
	b, err := readBatch(filepath.Join(dir, project.BatchFile))
	if err != nil {
		return err
	}

	scnDir := filepath.Join(dir, project.ScenarioDir(name))
	if err := prepareDir(scnDir); err != nil {
		return err
	}
	if err := maxent.WriteProjection(scnDir, t, fields); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d catchments, %d layers\n", scnDir, t.Len(), len(fields))

	abs := scnDir
	if a, err := filepath.Abs(scnDir); err == nil {
		abs = a
	}
	b.Set("outputdirectory", abs)
	b.Set("responsecurves", "false")
	b.Set("pictures", "false")
	b.Set("jackknife", "false")
	b.Set("projectionlayers", abs)

	return writeBatch(filepath.Join(dir, project.ScenarioBatch(name)), b)
}

func sourceTable(c *command.Command, p *project.Project) (*catchment.Table, string, error) {
	if scenarioFlag != "" {
		s, err := scenario.Read(scenarioFlag)
		if err != nil {
			return nil, "", err
		}
		env, err := p.EnvVars()
		if err != nil {
			return nil, "", err
		}
		t, counts, err := s.Apply(env)
		if err != nil {
			return nil, "", fmt.Errorf("on file %q: %v", scenarioFlag, err)
		}
		for i, ch := range s.Changes {
			fmt.Fprintf(c.Stderr(), "change %q: %d catchments\n", ch.Field, counts[i])
		}
		name := s.Name
		if nameFlag != "" {
			name = nameFlag
		}
		return t, name, nil
	}

	if nameFlag == "" {
		return nil, "", c.UsageError("flag --name undefined")
	}
	if tableFlag != "" {
		t, err := readTable(tableFlag)
		return t, nameFlag, err
	}
	t, err := p.EnvVars()
	return t, nameFlag, err
}

func prepareDir(dir string) error {
	if _, err := os.Stat(dir); err == nil && !reuse {
		old := dir + "_OLD"
		if err := os.RemoveAll(old); err != nil {
			return err
		}
		if err := os.Rename(dir, old); err != nil {
			return err
		}
	}
	return os.MkdirAll(dir, 0o755)
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

func readHeader(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields, err := swd.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return fields, nil
}

func readBatch(name string) (*maxent.Batch, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := maxent.ReadBatch(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return b, nil
}

func writeBatch(name string, b *maxent.Batch) (err error) {
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

	if err := b.Write(f); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
