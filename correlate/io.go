// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package correlate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadResponses reads a set of species-habitat correlations
// from a CSV file.
//
// The CSV file must contain the following fields:
//
//   - variable, the name of the environment variable
//   - coef, the Pearson correlation coefficient
//
// Optionally it can contain a p_value field.
// Any other field will be ignored.
//
// Here is an example file:
//
//	variable,coef,abs_coef,p_value
//	V0001E,-0.213400,0.213400,0.001000
//	StreamOrde,0.181200,0.181200,0.004000
func ReadResponses(r io.Reader) ([]Response, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	fields, err := readHeader(tab, "variable", "coef")
	if err != nil {
		return nil, err
	}

	var rs []Response
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "variable"
		v := strings.Trim(strings.TrimSpace(row[fields[f]]), `"`)
		if v == "" {
			continue
		}

		f = "coef"
		c, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		p := math.NaN()
		f = "p_value"
		if i, ok := fields[f]; ok {
			p, err = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}
		rs = append(rs, Response{Var: v, Coef: c, P: p})
	}
	return rs, nil
}

// WriteResponses writes a set of species-habitat correlations
// as a CSV file.
func WriteResponses(w io.Writer, rs []Response) error {
	tab := csv.NewWriter(w)

	header := []string{"variable", "coef", "abs_coef", "p_value"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, r := range rs {
		row := []string{
			r.Var,
			strconv.FormatFloat(r.Coef, 'f', 6, 64),
			strconv.FormatFloat(math.Abs(r.Coef), 'f', 6, 64),
			strconv.FormatFloat(r.P, 'f', 6, 64),
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

// ReadPairs reads a set of correlated pairs
// from a CSV file.
//
// The CSV file must contain the following fields:
//
//   - var1, the name of the first variable
//   - var2, the name of the second variable
//   - coeff, the Pearson correlation coefficient
//
// Here is an example file:
//
//	var1,var2,coeff
//	NLCD4,NLCD8,-0.912300
//	V0001E,Slope,0.733100
func ReadPairs(r io.Reader) ([]Pair, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	fields, err := readHeader(tab, "var1", "var2", "coeff")
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "coeff"
		c, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		pairs = append(pairs, Pair{
			Var1: strings.TrimSpace(row[fields["var1"]]),
			Var2: strings.TrimSpace(row[fields["var2"]]),
			Coef: c,
		})
	}
	return pairs, nil
}

// WritePairs writes a set of correlated pairs
// as a CSV file.
func WritePairs(w io.Writer, pairs []Pair) error {
	tab := csv.NewWriter(w)

	if err := tab.Write([]string{"var1", "var2", "coeff"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, p := range pairs {
		row := []string{
			p.Var1,
			p.Var2,
			strconv.FormatFloat(p.Coef, 'f', 6, 64),
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

func readHeader(tab *csv.Reader, want ...string) (map[string]int, error) {
	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range want {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}
	return fields, nil
}
