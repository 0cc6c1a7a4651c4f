// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package aggregate implements the area-weighted aggregation
// of catchment values into larger units
// (usually HUC12 watersheds).
package aggregate

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/habuplift/catchment"
)

// AreaField is the default field
// with the area of a catchment.
const AreaField = "Shape_Area"

// A Group is an aggregated unit.
type Group struct {
	Key    string
	Area   float64
	Values []float64
}

// AreaWeighted returns the area-weighted mean
// of a set of values,
// grouped by a key.
// Each feature has a key,
// an area,
// and a set of values.
//
// The mean of a group is the sum of value times area,
// divided by the total area of the group.
// A group with a total area of zero
// has NaN values.
// The returned groups are sorted by key.
func AreaWeighted(keys []string, areas []float64, values [][]float64) ([]Group, error) {
	if len(areas) != len(keys) {
		return nil, fmt.Errorf("got %d areas, want %d", len(areas), len(keys))
	}
	if len(values) != len(keys) {
		return nil, fmt.Errorf("got %d value rows, want %d", len(values), len(keys))
	}

	nv := 0
	if len(values) > 0 {
		nv = len(values[0])
	}
	groups := make(map[string]*Group)
	for i, k := range keys {
		if len(values[i]) != nv {
			return nil, fmt.Errorf("feature %d: got %d values, want %d", i, len(values[i]), nv)
		}
		g, ok := groups[k]
		if !ok {
			g = &Group{
				Key:    k,
				Values: make([]float64, nv),
			}
			groups[k] = g
		}
		g.Area += areas[i]
		for j, v := range values[i] {
			g.Values[j] += v * areas[i]
		}
	}

	gs := make([]Group, 0, len(groups))
	for _, g := range groups {
		for j := range g.Values {
			if g.Area == 0 {
				g.Values[j] = math.NaN()
				continue
			}
			g.Values[j] /= g.Area
		}
		gs = append(gs, *g)
	}
	slices.SortFunc(gs, func(a, b Group) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return gs, nil
}

// Table aggregates the indicated fields
// of a catchment table,
// using a lookup of catchment GRIDCODE to unit key,
// and the area stored in the area field.
// Catchments without a key in the lookup are ignored,
// and its GRIDCODEs are returned.
func Table(t *catchment.Table, lookup map[int64]string, area string, fields []string) (groups []Group, missing []int64, err error) {
	ai, ok := t.Index(area)
	if !ok {
		return nil, nil, fmt.Errorf("area field %q not found", area)
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		x, ok := t.Index(f)
		if !ok {
			return nil, nil, fmt.Errorf("field %q not found", f)
		}
		idx[i] = x
	}

	var keys []string
	var areas []float64
	var values [][]float64
	for _, r := range t.Records() {
		k, ok := lookup[r.GridCode]
		if !ok {
			missing = append(missing, r.GridCode)
			continue
		}
		keys = append(keys, k)
		areas = append(areas, r.Values[ai])
		v := make([]float64, len(idx))
		for i, x := range idx {
			v[i] = r.Values[x]
		}
		values = append(values, v)
	}

	groups, err = AreaWeighted(keys, areas, values)
	if err != nil {
		return nil, nil, err
	}
	return groups, missing, nil
}
