// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package maxent

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/js-arias/habuplift/catchment"
)

// An Output is the observed
// and predicted habitat
// of a catchment.
type Output struct {
	GridCode   int64
	ReachCode  string
	Observed   bool
	Likelihood float64
	Predicted  bool
}

// Join joins the classified predictions
// with the catchments of a species table.
// A catchment without prediction
// has a NaN likelihood,
// and it is not predicted as habitat.
func Join(t *catchment.Table, species string, preds []Prediction) ([]Output, error) {
	obs, err := catchment.Presence(t, species)
	if err != nil {
		return nil, err
	}
	pm := make(map[int64]Prediction, len(preds))
	for _, p := range preds {
		pm[p.GridCode] = p
	}

	out := make([]Output, 0, t.Len())
	for _, r := range t.Records() {
		o := Output{
			GridCode:   r.GridCode,
			ReachCode:  r.ReachCode,
			Observed:   obs[r.GridCode],
			Likelihood: math.NaN(),
		}
		if p, ok := pm[r.GridCode]; ok {
			o.Likelihood = p.Prob
			o.Predicted = p.Habitat
		}
		out = append(out, o)
	}
	return out, nil
}

// A Confusion is a confusion matrix
// of observed and predicted habitat.
type Confusion struct {
	TruePos  int
	FalsePos int
	FalseNeg int
	TrueNeg  int
}

// Matrix returns the confusion matrix
// of a set of outputs.
func Matrix(out []Output) Confusion {
	var c Confusion
	for _, o := range out {
		switch {
		case o.Observed && o.Predicted:
			c.TruePos++
		case o.Observed:
			c.FalseNeg++
		case o.Predicted:
			c.FalsePos++
		default:
			c.TrueNeg++
		}
	}
	return c
}

var outputHeader = []string{
	catchment.GridCode,
	catchment.ReachCode,
	"Observed",
	"Likelihood",
	"Predicted",
}

// WriteOutput writes a set of outputs
// as a CSV file.
func WriteOutput(w io.Writer, out []Output) error {
	tab := csv.NewWriter(w)
	if err := tab.Write(outputHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, o := range out {
		row := []string{
			strconv.FormatInt(o.GridCode, 10),
			o.ReachCode,
			boolFlag(o.Observed),
			catchment.FormatValue(o.Likelihood),
			boolFlag(o.Predicted),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}
	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
