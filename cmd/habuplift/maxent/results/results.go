// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package results implements a command to join
// the MaxEnt predictions of a species
// with the observed records.
package results

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/huc"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: `results [--dir <folder>] [--huc <list>]
	<project-file> <species>`,
	Short: "compare MaxEnt predictions with observations",
	Long: `
Command results reads the output of a MaxEnt run of a species and joins the
predicted likelihood of each catchment with the catchments of the species
table of the project.

The first argument of the command is the name of the project file.

The second argument is the name of the species.

By default, the MaxEnt output is read from the Output folder of the species.
Use the flag --dir to set a different sub-folder of the species folder.

By default, all catchments of the species table are used. Use the flag --huc
to define a list of hydrologic unit codes, separated by commas, so only the
catchments with a reach code that starts with one of the codes are used.

The output is written in the species folder as ME_Output.csv, with the fields
GRIDCODE, REACHCODE, Observed (1 if the species was observed in the
catchment), Likelihood (the MaxEnt logistic value), and Predicted (1 if the
likelihood is equal or larger than the threshold of the run). A confusion
matrix of observed and predicted habitat is printed on the standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var dirFlag string
var hucFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&dirFlag, "dir", project.OutputDir, "")
	c.Flags().StringVar(&hucFlag, "huc", "", "")
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
	th, err := readThreshold(filepath.Join(out, project.MaxEntResults))
	if err != nil {
		return err
	}
	preds, err := readPredictions(filepath.Join(out, project.PredictionsFile(species)))
	if err != nil {
		return err
	}
	maxent.Classify(preds, th)

	t, err := p.Species()
	if err != nil {
		return err
	}
	if codes := varlist.Split(hucFlag); len(codes) > 0 {
		t = t.WithHUC(huc.NewSet(codes...))
	}
	if t.Len() == 0 {
		return fmt.Errorf("no catchments with HUC %q", hucFlag)
	}

	res, err := maxent.Join(t, species, preds)
	if err != nil {
		return err
	}
	if err := writeOutput(filepath.Join(dir, project.OutputFile), res); err != nil {
		return err
	}

	m := maxent.Matrix(res)
	w := c.Stdout()
	fmt.Fprintf(w, "threshold\t%.6f\n", th)
	fmt.Fprintf(w, "\tpredicted\tnot-predicted\n")
	fmt.Fprintf(w, "observed\t%d\t%d\n", m.TruePos, m.FalseNeg)
	fmt.Fprintf(w, "not-observed\t%d\t%d\n", m.FalsePos, m.TrueNeg)
	return nil
}

func readThreshold(name string) (float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	th, err := maxent.Threshold(f, maxent.ThresholdField)
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

func writeOutput(name string, res []maxent.Output) (err error) {
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

	if err := maxent.WriteOutput(f, res); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
