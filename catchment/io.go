// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package catchment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Fields used as row identifiers by GIS exports,
// that are never read as numeric fields.
var ignored = map[string]bool{
	"objectid": true,
	"oid":      true,
	"fid":      true,
}

// ReadCSV reads a catchment table from a CSV file.
//
// The CSV file must contain a GRIDCODE field,
// with the catchment ID,
// and optionally a REACHCODE field,
// with the reach code of the catchment.
// Key fields are case insensitive.
// Any other field in which all non-empty cells
// are numbers is stored as a numeric field,
// empty cells are stored as NaN.
// Non-numeric fields are reported by the Skipped method.
//
// Here is an example file:
//
//	GRIDCODE,REACHCODE,LENGTHKM,StreamOrde,V0001E,AnimalOps
//	1001,03050102000123,1.25,2,0.53,0
//	1002,03050102000456,0.87,1,0.41,3
//	1003,03050103000001,2.10,3,0.77,-9999
func ReadCSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	gc, rc := -1, -1
	for i, h := range head {
		h = strings.TrimSpace(h)
		head[i] = h
		switch strings.ToUpper(h) {
		case GridCode:
			gc = i
		case ReachCode:
			rc = i
		}
	}
	if gc < 0 {
		return nil, fmt.Errorf("expecting field %q", GridCode)
	}

	var rows [][]string
	var lines []int
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		rows = append(rows, row)
		lines = append(lines, ln)
	}

	var fields []string
	var cols []int
	var skipped []string
	for i, h := range head {
		if i == gc || i == rc {
			continue
		}
		if ignored[strings.ToLower(h)] {
			continue
		}
		if !isNumeric(rows, i) {
			skipped = append(skipped, h)
			continue
		}
		fields = append(fields, h)
		cols = append(cols, i)
	}

	t := New(fields)
	t.skipped = skipped
	for j, row := range rows {
		id, err := ParseGridCode(row[gc])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", lines[j], GridCode, err)
		}
		var reach string
		if rc >= 0 {
			reach = row[rc]
		}
		v := make([]float64, len(cols))
		for k, i := range cols {
			s := strings.TrimSpace(row[i])
			if s == "" {
				v[k] = math.NaN()
				continue
			}
			v[k], _ = strconv.ParseFloat(s, 64)
		}
		if err := t.Add(id, reach, v); err != nil {
			return nil, fmt.Errorf("on row %d: %v", lines[j], err)
		}
	}
	return t, nil
}

func isNumeric(rows [][]string, col int) bool {
	for _, row := range rows {
		s := strings.TrimSpace(row[col])
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return false
		}
	}
	return true
}

// ParseGridCode parses a catchment ID.
func ParseGridCode(s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return id, nil
	}

	// GIS exports might store IDs as doubles
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, err
	}
	return int64(f), nil
}

// FormatValue returns the string used to store a value.
// NaN values are stored as empty strings.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes a table as a CSV file.
func (t *Table) WriteCSV(w io.Writer) error {
	tab := csv.NewWriter(w)

	header := append([]string{GridCode, ReachCode}, t.fields...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, r := range t.rows {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(r.GridCode, 10), r.ReachCode)
		for _, v := range r.Values {
			row = append(row, FormatValue(v))
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
