// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package catchment implements tables of catchment attributes.
//
// A catchment table is keyed by the catchment GRIDCODE,
// carries the reach code of the catchment
// (used to locate its hydrologic units),
// and a set of numeric fields,
// for example, environment variables
// or species presences.
package catchment

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/js-arias/habuplift/huc"
)

// Key fields of a catchment table.
const (
	GridCode  = "GRIDCODE"
	ReachCode = "REACHCODE"
)

// NoData are the values used to flag
// missing data in environment layers.
var NoData = []float64{-9998, -9999}

// IsNoData returns true if v is a missing value.
func IsNoData(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return slices.Contains(NoData, v)
}

// A Record is a row of a catchment table.
type Record struct {
	GridCode  int64
	ReachCode string
	Values    []float64
}

// A Table is a collection of catchment records
// with the same numeric fields.
type Table struct {
	fields  []string
	index   map[string]int
	rows    []*Record
	ids     map[int64]int
	skipped []string
}

// New creates a new empty table
// with the given numeric fields.
func New(fields []string) *Table {
	t := &Table{
		fields: slices.Clone(fields),
		index:  make(map[string]int, len(fields)),
		ids:    make(map[int64]int),
	}
	for i, f := range t.fields {
		t.index[f] = i
	}
	return t
}

// Add adds a record to the table.
// The record values must match the table fields.
func (t *Table) Add(gridcode int64, reachcode string, values []float64) error {
	if len(values) != len(t.fields) {
		return fmt.Errorf("catchment %d: got %d values, want %d", gridcode, len(values), len(t.fields))
	}
	if _, dup := t.ids[gridcode]; dup {
		return fmt.Errorf("catchment %d: repeated %s", gridcode, GridCode)
	}
	t.ids[gridcode] = len(t.rows)
	t.rows = append(t.rows, &Record{
		GridCode:  gridcode,
		ReachCode: strings.TrimSpace(reachcode),
		Values:    slices.Clone(values),
	})
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	nt := New(t.fields)
	nt.skipped = slices.Clone(t.skipped)
	for _, r := range t.rows {
		nt.Add(r.GridCode, r.ReachCode, r.Values)
	}
	return nt
}

// Column returns the values of a field
// in table order.
func (t *Table) Column(field string) ([]float64, error) {
	i, ok := t.Index(field)
	if !ok {
		return nil, fmt.Errorf("field %q not in table", field)
	}
	col := make([]float64, len(t.rows))
	for j, r := range t.rows {
		col[j] = r.Values[i]
	}
	return col, nil
}

// Fields returns the numeric fields of the table.
func (t *Table) Fields() []string {
	return slices.Clone(t.fields)
}

// GridCodes returns the catchment IDs
// in table order.
func (t *Table) GridCodes() []int64 {
	ids := make([]int64, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.GridCode
	}
	return ids
}

// Index returns the index of a field.
// Field names are case sensitive.
func (t *Table) Index(field string) (int, bool) {
	i, ok := t.index[field]
	return i, ok
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Records returns the records of the table
// in table order.
// The returned records are owned by the table.
func (t *Table) Records() []*Record {
	return t.rows
}

// Row returns the record of a catchment.
func (t *Table) Row(gridcode int64) (*Record, bool) {
	i, ok := t.ids[gridcode]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// Set sets the value of a field in a catchment.
func (t *Table) Set(gridcode int64, field string, v float64) error {
	i, ok := t.Index(field)
	if !ok {
		return fmt.Errorf("field %q not in table", field)
	}
	r, ok := t.Row(gridcode)
	if !ok {
		return fmt.Errorf("catchment %d not in table", gridcode)
	}
	r.Values[i] = v
	return nil
}

// Skipped returns the fields that were found
// when reading the table,
// but were not stored
// because they were not numeric.
func (t *Table) Skipped() []string {
	return slices.Clone(t.skipped)
}

// Value returns the value of a field in a catchment.
func (t *Table) Value(gridcode int64, field string) (float64, bool) {
	i, ok := t.Index(field)
	if !ok {
		return 0, false
	}
	r, ok := t.Row(gridcode)
	if !ok {
		return 0, false
	}
	return r.Values[i], true
}

// Select returns a new table with the records
// for which the function returns true.
func (t *Table) Select(fn func(r *Record) bool) *Table {
	nt := New(t.fields)
	nt.skipped = slices.Clone(t.skipped)
	for _, r := range t.rows {
		if !fn(r) {
			continue
		}
		nt.Add(r.GridCode, r.ReachCode, r.Values)
	}
	return nt
}

// WithHUC returns a new table with the records
// in which the reach code
// matches any hydrologic unit in the set.
func (t *Table) WithHUC(s huc.Set) *Table {
	return t.Select(func(r *Record) bool {
		return s.Match(r.ReachCode)
	})
}

// Keep returns a new table with only the given fields,
// in the given order.
func (t *Table) Keep(fields []string) (*Table, error) {
	idx := make([]int, 0, len(fields))
	for _, f := range fields {
		i, ok := t.Index(f)
		if !ok {
			return nil, fmt.Errorf("field %q not in table", f)
		}
		idx = append(idx, i)
	}

	nt := New(fields)
	for _, r := range t.rows {
		v := make([]float64, len(idx))
		for j, i := range idx {
			v[j] = r.Values[i]
		}
		nt.Add(r.GridCode, r.ReachCode, v)
	}
	return nt, nil
}

// Drop returns a new table without the given fields.
// Fields not in the table are ignored.
func (t *Table) Drop(fields []string) *Table {
	var keep []string
	for _, f := range t.fields {
		if slices.Contains(fields, f) {
			continue
		}
		keep = append(keep, f)
	}
	nt, _ := t.Keep(keep)
	return nt
}

// WithNoData returns the fields that have
// at least one missing value.
func (t *Table) WithNoData() []string {
	var nd []string
	for i, f := range t.fields {
		for _, r := range t.rows {
			if IsNoData(r.Values[i]) {
				nd = append(nd, f)
				break
			}
		}
	}
	return nd
}

// Update sets the values of the indicated fields
// using the values of the same fields
// in the records of another table
// with the same GRIDCODE.
// It returns the number of updated records.
//
// Fields missing in either table are an error.
func (t *Table) Update(from *Table, fields []string) (int, error) {
	type pair struct{ to, from int }
	var idx []pair
	for _, f := range fields {
		ti, ok := t.Index(f)
		if !ok {
			return 0, fmt.Errorf("field %q not in updated table", f)
		}
		fi, ok := from.Index(f)
		if !ok {
			return 0, fmt.Errorf("field %q not in source table", f)
		}
		idx = append(idx, pair{to: ti, from: fi})
	}

	var n int
	for _, r := range t.rows {
		fr, ok := from.Row(r.GridCode)
		if !ok {
			continue
		}
		for _, p := range idx {
			r.Values[p.to] = fr.Values[p.from]
		}
		n++
	}
	return n, nil
}

// Presence returns the catchments
// in which the value of the species field is 1.
func Presence(t *Table, species string) (map[int64]bool, error) {
	i, ok := t.Index(species)
	if !ok {
		return nil, fmt.Errorf("species %q not in table", species)
	}
	p := make(map[int64]bool)
	for _, r := range t.rows {
		if r.Values[i] == 1 {
			p[r.GridCode] = true
		}
	}
	return p, nil
}
