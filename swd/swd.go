// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package swd implements samples-with-data (SWD) files.
//
// An SWD file is the input table of MaxEnt
// when environment layers are given as a table
// instead of rasters.
// It is a CSV file with the species label,
// two coordinate fields,
// and the values of each environment variable:
//
//	Species,X,Y,V0001E,StreamOrde
//	Notropis_alborus,1001,0,0.53,2
//	background,1002,0,0.41,1
//
// Catchments are not points,
// so the X field stores the catchment GRIDCODE
// (used to link the MaxEnt predictions
// back to the catchments)
// and the Y field is always 0.
package swd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/habuplift/catchment"
)

// Background is the label used for background samples.
const Background = "background"

var header = []string{"Species", "X", "Y"}

// Write writes an SWD file for a species.
// Records of catchments with the species are written first,
// followed by the background records.
// It returns the number of presence and background records.
func Write(w io.Writer, species string, t *catchment.Table, presence map[int64]bool, fields []string) (pres, back int, err error) {
	tab, err := t.Keep(fields)
	if err != nil {
		return 0, 0, err
	}

	out := csv.NewWriter(w)
	if err := out.Write(append(append([]string{}, header...), fields...)); err != nil {
		return 0, 0, fmt.Errorf("unable to write header: %v", err)
	}

	write := func(label string, r *catchment.Record) error {
		row := make([]string, 0, len(header)+len(fields))
		row = append(row, label, strconv.FormatInt(r.GridCode, 10), "0")
		for _, v := range r.Values {
			row = append(row, catchment.FormatValue(v))
		}
		return out.Write(row)
	}

	for _, r := range tab.Records() {
		if !presence[r.GridCode] {
			continue
		}
		if err := write(species, r); err != nil {
			return 0, 0, fmt.Errorf("when writing data: %v", err)
		}
		pres++
	}
	for _, r := range tab.Records() {
		if presence[r.GridCode] {
			continue
		}
		if err := write(Background, r); err != nil {
			return 0, 0, fmt.Errorf("when writing data: %v", err)
		}
		back++
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return 0, 0, fmt.Errorf("when writing data: %v", err)
	}
	return pres, back, nil
}

// ReadHeader reads the header of an SWD file
// and returns the names of the environment variables.
func ReadHeader(r io.Reader) ([]string, error) {
	tab := csv.NewReader(r)
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < len(header) {
		return nil, fmt.Errorf("header: got %d fields, want at least %d", len(head), len(header))
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(head[i]), h) {
			return nil, fmt.Errorf("header: field %d: got %q, want %q", i, head[i], h)
		}
	}

	fields := make([]string, 0, len(head)-len(header))
	for _, h := range head[len(header):] {
		fields = append(fields, strings.TrimSpace(h))
	}
	return fields, nil
}
