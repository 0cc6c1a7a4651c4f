// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package uplift

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/decile"
	"gonum.org/v1/gonum/floats"
)

// A Table is a table of uplift values
// keyed by catchment ID.
// Missing values are stored as NaN.
type Table struct {
	fields []string
	index  map[string]int
	ids    []int64
	rows   map[int64][]float64
}

// NewTable creates an empty table
// with the indicated fields.
func NewTable(fields []string) *Table {
	t := &Table{
		index: make(map[string]int),
		rows:  make(map[int64][]float64),
	}
	for _, f := range fields {
		t.AddField(f)
	}
	return t
}

// Add adds a catchment to the table.
func (t *Table) Add(gridcode int64, values []float64) error {
	if len(values) != len(t.fields) {
		return fmt.Errorf("catchment %d: got %d values, want %d", gridcode, len(values), len(t.fields))
	}
	if _, dup := t.rows[gridcode]; dup {
		return fmt.Errorf("catchment %d: repeated %s", gridcode, catchment.GridCode)
	}
	t.ids = append(t.ids, gridcode)
	t.rows[gridcode] = slices.Clone(values)
	return nil
}

// AddField adds a new field to the table,
// with NaN values.
// If the field already exists,
// it does nothing.
func (t *Table) AddField(field string) {
	if _, ok := t.index[field]; ok {
		return
	}
	t.index[field] = len(t.fields)
	t.fields = append(t.fields, field)
	for id, r := range t.rows {
		t.rows[id] = append(r, math.NaN())
	}
}

// Column returns the values of a field
// in table order.
func (t *Table) Column(field string) ([]float64, error) {
	i, ok := t.index[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in table", field)
	}
	col := make([]float64, len(t.ids))
	for j, id := range t.ids {
		col[j] = t.rows[id][i]
	}
	return col, nil
}

// Fields returns the fields of the table.
func (t *Table) Fields() []string {
	return slices.Clone(t.fields)
}

// GridCodes returns the catchment IDs
// in table order.
func (t *Table) GridCodes() []int64 {
	return slices.Clone(t.ids)
}

// Len returns the number of catchments in the table.
func (t *Table) Len() int {
	return len(t.ids)
}

// Set sets the value of a field in a catchment.
func (t *Table) Set(gridcode int64, field string, v float64) error {
	i, ok := t.index[field]
	if !ok {
		return fmt.Errorf("field %q not in table", field)
	}
	r, ok := t.rows[gridcode]
	if !ok {
		return fmt.Errorf("catchment %d not in table", gridcode)
	}
	r[i] = v
	return nil
}

// Value returns the value of a field in a catchment.
func (t *Table) Value(gridcode int64, field string) (float64, bool) {
	i, ok := t.index[field]
	if !ok {
		return 0, false
	}
	r, ok := t.rows[gridcode]
	if !ok {
		return 0, false
	}
	return r[i], true
}

// UpliftFields returns the fields
// with the uplift of a species,
// i.e., the fields with the "_up" suffix.
func (t *Table) UpliftFields() []string {
	var up []string
	for _, f := range t.fields {
		if strings.HasSuffix(f, UpliftSuffix) {
			up = append(up, f)
		}
	}
	return up
}

// Merge merges a set of uplift tables
// into a single table.
// Catchments are sorted in the order
// in which they are found in the tables.
// Values missing in a table are set as NaN.
// A field repeated in two tables is an error.
func Merge(tables ...*Table) (*Table, error) {
	m := NewTable(nil)
	for _, t := range tables {
		for _, f := range t.fields {
			if _, ok := m.index[f]; ok {
				return nil, fmt.Errorf("field %q repeated in merged tables", f)
			}
			m.AddField(f)
		}
		for _, id := range t.ids {
			if _, ok := m.rows[id]; ok {
				continue
			}
			v := make([]float64, len(m.fields))
			for i := range v {
				v[i] = math.NaN()
			}
			m.Add(id, v)
		}
		for _, id := range t.ids {
			r := t.rows[id]
			for i, f := range t.fields {
				m.rows[id][m.index[f]] = r[i]
			}
		}
	}
	return m, nil
}

// Average sets a field with the average uplift
// of the species in each catchment.
// Missing (NaN) values are ignored,
// and a catchment without values
// has a NaN average.
func (t *Table) Average(field string) error {
	up := t.UpliftFields()
	if len(up) == 0 {
		return errors.New("uplift fields not found")
	}
	if slices.Contains(up, field) {
		return fmt.Errorf("average field %q is an uplift field", field)
	}
	t.AddField(field)

	for _, id := range t.ids {
		vals := t.values(id, up)
		avg := math.NaN()
		if len(vals) > 0 {
			avg = floats.Sum(vals) / float64(len(vals))
		}
		t.Set(id, field, avg)
	}
	return nil
}

// Summary fields.
const (
	MinUplift = "minUplift"
	MaxUplift = "maxUplift"
	RngUplift = "rngUplift"
	PctAbove  = "pctAbove"
	PctBelow  = "pctBelow"
)

// Summary sets the summary fields
// of the species uplift in each catchment:
// the minimum (minUplift),
// the maximum (maxUplift),
// and the range (rngUplift) of the uplift values,
// and the proportion of species
// with an uplift above the high threshold (pctAbove),
// or below the low threshold (pctBelow).
// Proportions are calculated over all species,
// missing values are ignored
// in the minimum and maximum.
// If the summary fields already exist
// they are overwritten.
func (t *Table) Summary(high, low float64) error {
	up := t.UpliftFields()
	if len(up) == 0 {
		return errors.New("uplift fields not found")
	}
	for _, f := range []string{MinUplift, MaxUplift, RngUplift, PctAbove, PctBelow} {
		t.AddField(f)
	}

	for _, id := range t.ids {
		vals := t.values(id, up)
		lo, hi := math.NaN(), math.NaN()
		if len(vals) > 0 {
			lo = floats.Min(vals)
			hi = floats.Max(vals)
		}
		var above, below float64
		for _, v := range vals {
			if v > high {
				above++
			}
			if v < low {
				below++
			}
		}
		t.Set(id, MinUplift, lo)
		t.Set(id, MaxUplift, hi)
		t.Set(id, RngUplift, hi-lo)
		t.Set(id, PctAbove, above/float64(len(up)))
		t.Set(id, PctBelow, below/float64(len(up)))
	}
	return nil
}

// Decile sets a decile field,
// with the decile of the values of a field.
// Catchments with missing values
// are assigned to decile 0.
func (t *Table) Decile(field, decField string) error {
	col, err := t.Column(field)
	if err != nil {
		return err
	}
	t.AddField(decField)
	dec := decile.Assign(col)
	for i, id := range t.ids {
		t.Set(id, decField, float64(dec[i]))
	}
	return nil
}

// values returns the non missing values
// of a set of fields in a catchment.
func (t *Table) values(id int64, fields []string) []float64 {
	r := t.rows[id]
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v := r[t.index[f]]
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

// ReadCSV reads an uplift table from a CSV file.
// The file must have a GRIDCODE field,
// all other fields are read as numbers.
// Empty cells are read as NaN.
//
// Here is an example file:
//
//	GRIDCODE,NAlboru_cur,NAlboru_BF,NAlboru_up
//	1001,0.5,0.75,0.25
//	1002,0.25,0.125,-0.125
func ReadCSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	gc := -1
	var fields []string
	var cols []int
	for i, h := range head {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, catchment.GridCode) {
			gc = i
			continue
		}
		fields = append(fields, h)
		cols = append(cols, i)
	}
	if gc < 0 {
		return nil, fmt.Errorf("expecting field %q", catchment.GridCode)
	}

	t := NewTable(fields)
	if len(t.fields) != len(fields) {
		return nil, errors.New("repeated fields in header")
	}
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
		vals := make([]float64, len(cols))
		for i, c := range cols {
			s := strings.TrimSpace(row[c])
			if s == "" {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, fields[i], err)
			}
			vals[i] = v
		}
		if err := t.Add(id, vals); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return t, nil
}

// WriteCSV writes a table as a CSV file.
func (t *Table) WriteCSV(w io.Writer) error {
	tab := csv.NewWriter(w)

	header := append([]string{catchment.GridCode}, t.fields...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, id := range t.ids {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(id, 10))
		for _, v := range t.rows[id] {
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
