// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names of the files
// stored in a species folder.
const (
	DataFile      = "AllHUC8Records.csv"
	SHFile        = "SH_Correlations.csv"
	RVFile        = "RV_Correlations.csv"
	RedundantFile = "RedundantVars.csv"
	VarsFile      = "IncludedVariables.csv"
	BatchFile     = "RunMaxent.bat"
	OutputDir     = "Output"
	ResultsFile   = "ME_Results.csv"
	OutputFile    = "ME_Output.csv"
)

// Names of the files
// written by MaxEnt in an output folder.
const (
	MaxEntResults = "maxentResults.csv"
	MaxEntLog     = "maxent.log"
)

// StatsDir returns the root folder
// of the species outputs
// as defined in a project.
func (p *Project) StatsDir() (string, error) {
	dir := p.Path(Stats)
	if dir == "" {
		return "", fmt.Errorf("stats folder not defined in project %q", p.name)
	}
	return dir, nil
}

// SpeciesDir returns the folder of a species.
// If create is true,
// the folder is created if it does not exist,
// otherwise a missing folder is an error.
func (p *Project) SpeciesDir(species string, create bool) (string, error) {
	root, err := p.StatsDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, species)
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("species %q: %v", species, err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("species %q: %q is not a folder", species, dir)
	}
	return dir, nil
}

// SWDFile returns the name of the SWD file
// of a species.
func SWDFile(species string) string {
	return species + "_SWD.csv"
}

// PredictionsFile returns the name of the file
// with the MaxEnt predictions of a species.
func PredictionsFile(species string) string {
	return species + ".csv"
}

// ScenarioDir returns the name of the output folder
// of a scenario.
func ScenarioDir(scenario string) string {
	return scenario + "_Output"
}

// ScenarioBatch returns the name of the MaxEnt batch file
// of a scenario.
func ScenarioBatch(scenario string) string {
	return scenario + "_" + BatchFile
}

// UpliftFile returns the name of the uplift table
// of a species in a scenario.
func UpliftFile(scenario string) string {
	return scenario + "_Uplift.csv"
}

// MergedUpliftFile returns the name of the file
// with the merged uplift of all species
// in a scenario.
func MergedUpliftFile(scenario string) string {
	return scenario + "_UpliftResults.csv"
}

// CheckFile returns an error
// if a file does not exist.
func CheckFile(name string) error {
	if _, err := os.Stat(name); err != nil {
		return fmt.Errorf("%q not found: %v", name, err)
	}
	return nil
}
