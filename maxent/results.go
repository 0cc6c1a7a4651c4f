// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package maxent

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ThresholdField is the field of the MaxEnt results file
// used as the habitat threshold.
const ThresholdField = "Balance training omission, predicted area and threshold value logistic threshold"

// Threshold reads the value of a threshold field
// from the first data row
// of a MaxEnt results file
// (maxentResults.csv).
func Threshold(r io.Reader, field string) (float64, error) {
	tab := csv.NewReader(r)
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return 0, fmt.Errorf("while reading header: %v", err)
	}
	idx := -1
	for i, h := range head {
		if strings.EqualFold(strings.TrimSpace(h), field) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("expecting field %q", field)
	}

	row, err := tab.Read()
	if errors.Is(err, io.EOF) {
		return 0, errors.New("results without data")
	}
	if err != nil {
		return 0, fmt.Errorf("while reading data: %v", err)
	}
	if idx >= len(row) {
		return 0, fmt.Errorf("field %q: missing value", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %v", field, err)
	}
	return v, nil
}

// A Prediction is the habitat likelihood of a catchment.
type Prediction struct {
	GridCode int64
	Prob     float64
	Habitat  bool
}

// ReadPredictions reads the MaxEnt predictions
// for the samples of an SWD run.
//
// The first field must be the sample X coordinate
// (i.e., the catchment GRIDCODE),
// and the third field the predicted likelihood.
//
// Here is an example file:
//
//	X,Y,Notropis_alborus logistic values
//	1001,0,0.8123
//	1002,0,0.1377
func ReadPredictions(r io.Reader) ([]Prediction, error) {
	tab := csv.NewReader(r)
	tab.TrimLeadingSpace = true

	if _, err := tab.Read(); err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	var preds []Prediction
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("on row %d: got %d fields, want 3", ln, len(row))
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil || x != math.Trunc(x) {
			return nil, fmt.Errorf("on row %d: invalid catchment %q", ln, row[0])
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: likelihood: %v", ln, err)
		}
		preds = append(preds, Prediction{
			GridCode: int64(x),
			Prob:     p,
		})
	}
	return preds, nil
}

// Classify sets the habitat flag of each prediction:
// a catchment is habitat
// if its likelihood is equal or larger than the threshold.
func Classify(preds []Prediction, threshold float64) {
	for i, p := range preds {
		preds[i].Habitat = p.Prob >= threshold
	}
}

var resultsHeader = []string{"GRIDCODE", "PROB", "HABITAT"}

// WriteResults writes a set of classified predictions
// as a CSV file.
func WriteResults(w io.Writer, preds []Prediction) error {
	tab := csv.NewWriter(w)
	if err := tab.Write(resultsHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, p := range preds {
		hab := "0"
		if p.Habitat {
			hab = "1"
		}
		row := []string{
			strconv.FormatInt(p.GridCode, 10),
			strconv.FormatFloat(p.Prob, 'f', -1, 64),
			hab,
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

// ReadResults reads a set of classified predictions
// from a CSV file
// with the fields GRIDCODE, PROB, and HABITAT.
func ReadResults(r io.Reader) ([]Prediction, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, h := range resultsHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var preds []Prediction
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "GRIDCODE"
		id, err := strconv.ParseInt(strings.TrimSpace(row[fields[f]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		f = "PROB"
		p, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		f = "HABITAT"
		h := strings.TrimSpace(row[fields[f]])
		preds = append(preds, Prediction{
			GridCode: id,
			Prob:     p,
			Habitat:  h == "1",
		})
	}
	return preds, nil
}
