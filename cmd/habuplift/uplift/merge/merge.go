// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package merge implements a command to merge
// the uplift of all species
// in a scenario.
package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/uplift"
)

var Command = &command.Command{
	Usage: "merge --scenario <name> <project-file>",
	Short: "merge the uplift of all species",
	Long: `
Command merge reads the uplift of a scenario for each species in the stats
folder of a project, and merges them into a single table.

The argument of the command is the name of the project file.

The flag --scenario is required and defines the name of the scenario. Species
without an uplift file for the scenario (<scenario>_Uplift.csv, written with
'habuplift uplift calc') are ignored.

The merged table contains the fields of each species, joined by GRIDCODE. Two
additional fields are added: <scenario>_avgUplift with the average uplift of
the species in each catchment, and <scenario>_decile with the decile of the
average uplift (from 1, the lowest uplift, to 10).

The merged table is written in the stats folder as
<scenario>_UpliftResults.csv.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var scenarioFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&scenarioFlag, "scenario", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if scenarioFlag == "" {
		return c.UsageError("flag --scenario undefined")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	root, err := p.StatsDir()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	var tables []*uplift.Table
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := filepath.Join(root, e.Name(), project.UpliftFile(scenarioFlag))
		if _, err := os.Stat(name); err != nil {
			continue
		}
		t, err := readTable(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stderr(), "%s: %d catchments\n", e.Name(), t.Len())
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return fmt.Errorf("scenario %q: uplift files not found", scenarioFlag)
	}

	m, err := uplift.Merge(tables...)
	if err != nil {
		return err
	}
	avg := scenarioFlag + "_avgUplift"
	if err := m.Average(avg); err != nil {
		return err
	}
	if err := m.Decile(avg, scenarioFlag+"_decile"); err != nil {
		return err
	}

	name := filepath.Join(root, project.MergedUpliftFile(scenarioFlag))
	if err := writeTable(name, m); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d species, %d catchments\n", name, len(tables), m.Len())
	return nil
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
