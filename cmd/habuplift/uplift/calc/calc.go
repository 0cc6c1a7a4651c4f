// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package calc implements a command to calculate
// the habitat uplift of a species
// in a scenario.
package calc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/uplift"
)

var Command = &command.Command{
	Usage: "calc --scenario <name> [--clean] <project-file> <species>",
	Short: "calculate the habitat uplift of a species",
	Long: `
Command calc reads the projected likelihood of a species under the current
conditions and under a scenario, and calculates the uplift (the scenario
likelihood minus the current likelihood) of each catchment.

The first argument of the command is the name of the project file.

The second argument is the name of the species.

The flag --scenario is required and defines the name of the scenario. The
scenario projection must be already done (use 'habuplift maxent project' and
'habuplift maxent run --scenario').

The current conditions are read from the projection of the XX scenario
(XX_Output/<species>_XX_Output.asc), and the scenario conditions from
<scenario>_Output/<species>_<scenario>_Output.asc. If a grid is not found in
the projection folder, it is searched in the Output folder of the species.

If the XX_Output folder has a GRIDCODE.asc grid, the values are matched by
catchment ID. Otherwise, the values are matched by its position, using the
GRIDCODE.asc grid of the scenario folder.

The uplift is written in the species folder as <scenario>_Uplift.csv, with
the fields GRIDCODE, <abbrev>_cur (current likelihood), <abbrev>_<scenario>
(scenario likelihood), and <abbrev>_up (uplift), in which <abbrev> is the
species abbreviation (for example, NAlboru for Notropis_alborus).

If the flag --clean is set, all the ASCII grids of the scenario folder, except
the species projection and the GRIDCODE grid, will be removed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var scenarioFlag string
var clean bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&scenarioFlag, "scenario", "", "")
	c.Flags().BoolVar(&clean, "clean", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting species name")
	}
	if scenarioFlag == "" {
		return c.UsageError("flag --scenario undefined")
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

	scnDir := filepath.Join(dir, project.ScenarioDir(scenarioFlag))
	if err := project.CheckFile(scnDir); err != nil {
		return err
	}
	baseDir := filepath.Join(dir, project.ScenarioDir(uplift.Baseline))

	base, err := maxent.ReadGrid(locate(dir, baseDir, species))
	if err != nil {
		return err
	}
	scn, err := maxent.ReadGrid(locate(dir, scnDir, species))
	if err != nil {
		return err
	}
	scnIDs, err := readIDs(scnDir)
	if err != nil {
		return err
	}

	var recs []uplift.Record
	if baseIDs, err := readIDs(baseDir); err == nil {
		bm, err := gridMap(baseIDs, base.Values)
		if err != nil {
			return fmt.Errorf("current conditions: %v", err)
		}
		sm, err := gridMap(scnIDs, scn.Values)
		if err != nil {
			return fmt.Errorf("scenario %q: %v", scenarioFlag, err)
		}
		recs = uplift.Joined(bm, sm)
		if len(recs) == 0 {
			return fmt.Errorf("scenario %q: no catchment shared with current conditions", scenarioFlag)
		}
	} else {
		recs, err = uplift.Positional(scnIDs, base.Values, scn.Values)
		if err != nil {
			return fmt.Errorf("scenario %q: %v", scenarioFlag, err)
		}
	}

	t, err := uplift.SpeciesTable(species, scenarioFlag, recs)
	if err != nil {
		return err
	}
	name := filepath.Join(dir, project.UpliftFile(scenarioFlag))
	if err := writeTable(name, t); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d catchments\n", name, t.Len())

	if !clean {
		return nil
	}
	removed, err := uplift.CleanGrids(scnDir, species)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d grids removed\n", scnDir, len(removed))
	return nil
}

// locate returns the projected grid of a species
// in a projection folder,
// or in the main output folder
// if the grid is not in the projection folder.
func locate(dir, projDir, species string) string {
	name := maxent.ProjectedGrid(projDir, species)
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(dir, project.OutputDir, filepath.Base(name))
}

func readIDs(dir string) ([]int64, error) {
	g, err := maxent.ReadGrid(filepath.Join(dir, maxent.GridCodeLayer+".asc"))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(g.Values))
	for i, v := range g.Values {
		ids[i] = int64(v)
	}
	return ids, nil
}

func gridMap(ids []int64, values []float64) (map[int64]float64, error) {
	if len(ids) != len(values) {
		return nil, fmt.Errorf("got %d values, want %d", len(values), len(ids))
	}
	m := make(map[int64]float64, len(ids))
	for i, id := range ids {
		m[id] = values[i]
	}
	return m, nil
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
