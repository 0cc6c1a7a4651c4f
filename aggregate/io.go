// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package aggregate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/habuplift/catchment"
)

// HUC12Field is the default field of the HUC12 code
// in a lookup table.
const HUC12Field = "HUC_12"

// ReadLookup reads a lookup table
// that assigns a unit key to each catchment.
// The table is a CSV file
// with a GRIDCODE field
// and a key field.
// Keys are kept as strings
// to preserve leading zeros.
//
// Here is an example file:
//
//	GRIDCODE,HUC_12
//	1001,030501020101
//	1002,030501020102
func ReadLookup(r io.Reader, field string) (map[int64]string, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	gc, kc := -1, -1
	for i, h := range head {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, catchment.GridCode) {
			gc = i
		}
		if strings.EqualFold(h, field) {
			kc = i
		}
	}
	if gc < 0 {
		return nil, fmt.Errorf("expecting field %q", catchment.GridCode)
	}
	if kc < 0 {
		return nil, fmt.Errorf("expecting field %q", field)
	}

	lookup := make(map[int64]string)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id, err := catchment.ParseGridCode(row[gc])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, catchment.GridCode, err)
		}
		key := strings.TrimSpace(row[kc])
		if key == "" {
			continue
		}
		if prev, ok := lookup[id]; ok && prev != key {
			return nil, fmt.Errorf("on row %d: catchment %d assigned to %q and %q", ln, id, prev, key)
		}
		lookup[id] = key
	}
	return lookup, nil
}

// AreaOutField is the field used to store
// the total area of a group.
const AreaOutField = "AREA"

// WriteCSV writes a set of aggregated groups
// as a CSV file.
func WriteCSV(w io.Writer, key string, fields []string, groups []Group) error {
	tab := csv.NewWriter(w)

	header := append([]string{key, AreaOutField}, fields...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, g := range groups {
		if len(g.Values) != len(fields) {
			return fmt.Errorf("group %q: got %d values, want %d", g.Key, len(g.Values), len(fields))
		}
		row := make([]string, 0, len(header))
		row = append(row, g.Key, strconv.FormatFloat(g.Area, 'f', -1, 64))
		for _, v := range g.Values {
			row = append(row, catchment.FormatValue(v))
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
