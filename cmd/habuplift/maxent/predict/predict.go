// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package predict implements a command to classify
// the MaxEnt predictions of a species.
package predict

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
)

var Command = &command.Command{
	Usage: "predict [--dir <folder>] [--field <name>] <project-file> <species>",
	Short: "classify MaxEnt predictions as habitat",
	Long: `
Command predict reads the output of a MaxEnt run of a species, and classifies
each catchment as habitat, or not habitat, using the logistic threshold of
the run.

The first argument of the command is the name of the project file.

The second argument is the name of the species.

By default, the MaxEnt output is read from the Output folder of the species.
Use the flag --dir to set a different sub-folder of the species folder. The
folder must contain the maxent.log file of a finished run, the
maxentResults.csv file, and the predictions file (<species>.csv).

By default, the threshold is the "Balance training omission, predicted area
and threshold value logistic threshold" field of the results file. Use the
flag --field to use a different field.

A catchment is habitat if its likelihood is equal or larger than the
threshold. The predictions are written in the species folder as
ME_Results.csv, with the fields GRIDCODE, PROB, and HABITAT.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var dirFlag string
var fieldFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&dirFlag, "dir", project.OutputDir, "")
	c.Flags().StringVar(&fieldFlag, "field", maxent.ThresholdField, "")
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

	out := filepath.Join(dir, dirFlag)
	if err := project.CheckFile(filepath.Join(out, project.MaxEntLog)); err != nil {
		return err
	}
	th, err := readThreshold(filepath.Join(out, project.MaxEntResults))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "logistic threshold: %.6f\n", th)

	preds, err := readPredictions(filepath.Join(out, project.PredictionsFile(species)))
	if err != nil {
		return err
	}
	maxent.Classify(preds, th)

	var hab int
	for _, pr := range preds {
		if pr.Habitat {
			hab++
		}
	}
	fmt.Fprintf(c.Stderr(), "habitat catchments: %d of %d\n", hab, len(preds))

	return writeResults(filepath.Join(dir, project.ResultsFile), preds)
}

func readThreshold(name string) (float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	th, err := maxent.Threshold(f, fieldFlag)
	if err != nil {
		return 0, fmt.Errorf("on file %q: %v", name, err)
	}
	return th, nil
}

func readPredictions(name string) ([]maxent.Prediction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	preds, err := maxent.ReadPredictions(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return preds, nil
}

func writeResults(name string, preds []maxent.Prediction) (err error) {
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

	if err := maxent.WriteResults(f, preds); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
