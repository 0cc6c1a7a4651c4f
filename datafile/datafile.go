// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package datafile implements the species data file:
// a table with the environment variables
// of all the catchments
// in the HUC8 watersheds
// in which a species was observed.
package datafile

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/huc"
)

// SpeciesField is the field with the presence flag
// of a species data file.
const SpeciesField = "Species"

// Extra are the GIS fields
// that are removed from the species data.
var Extra = []string{"Shape_Length", "Shape_Area"}

// Data is the data of a species.
type Data struct {
	Species string

	// Hydrologic units in which the species is found.
	HUC6 huc.Set
	HUC8 huc.Set

	// Environment variables of the catchments
	// in the HUC8 units of the species.
	Table *catchment.Table

	// Catchments in which the species is present.
	Presence map[int64]bool

	// Fields removed because they have missing values.
	NoData []string

	// Presence catchments not found
	// in the environment table.
	Missing []int64
}

// Build builds the data of a species
// from a table of species occurrences
// (a table with a field for each species)
// and a table of environment variables.
func Build(species string, occ, env *catchment.Table) (*Data, error) {
	pres, err := catchment.Presence(occ, species)
	if err != nil {
		return nil, err
	}
	if len(pres) == 0 {
		return nil, fmt.Errorf("species %q: no presence records", species)
	}

	var codes []string
	var missing []int64
	for _, r := range occ.Records() {
		if !pres[r.GridCode] {
			continue
		}
		rc := r.ReachCode
		er, ok := env.Row(r.GridCode)
		if !ok {
			missing = append(missing, r.GridCode)
		} else if rc == "" {
			rc = er.ReachCode
		}
		if rc == "" {
			continue
		}
		codes = append(codes, rc)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("species %q: presence records without %s", species, catchment.ReachCode)
	}

	d := &Data{
		Species:  species,
		HUC6:     huc.FromCodes(codes, huc.HUC6),
		HUC8:     huc.FromCodes(codes, huc.HUC8),
		Presence: make(map[int64]bool),
		Missing:  missing,
	}

	sel := env.WithHUC(d.HUC8)
	d.NoData = sel.WithNoData()
	drop := slices.Concat(d.NoData, Extra, []string{species, SpeciesField})
	d.Table = sel.Drop(drop)

	for _, id := range d.Table.GridCodes() {
		if pres[id] {
			d.Presence[id] = true
		}
	}
	return d, nil
}

// Write writes the data of a species
// as a CSV file.
// Presence records (with 1 in the Species field)
// are written first,
// and then the background records
// (with 0 in the Species field).
//
// Here is an example file:
//
//	Species,GRIDCODE,REACHCODE,LENGTHKM,StreamOrde,V0001E
//	1,1001,03050102000123,1.25,2,0.53
//	0,1002,03050102000456,0.87,1,0.41
func (d *Data) Write(w io.Writer) (pres, back int, err error) {
	tab := csv.NewWriter(w)

	fields := d.Table.Fields()
	header := append([]string{SpeciesField, catchment.GridCode, catchment.ReachCode}, fields...)
	if err := tab.Write(header); err != nil {
		return 0, 0, fmt.Errorf("unable to write header: %v", err)
	}

	for _, p := range []bool{true, false} {
		flag := "0"
		if p {
			flag = "1"
		}
		for _, r := range d.Table.Records() {
			if d.Presence[r.GridCode] != p {
				continue
			}
			row := make([]string, 0, len(header))
			row = append(row, flag, strconv.FormatInt(r.GridCode, 10), r.ReachCode)
			for _, v := range r.Values {
				row = append(row, catchment.FormatValue(v))
			}
			if err := tab.Write(row); err != nil {
				return pres, back, fmt.Errorf("when writing data: %v", err)
			}
			if p {
				pres++
			} else {
				back++
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return pres, back, fmt.Errorf("when writing data: %v", err)
	}
	return pres, back, nil
}

// Read reads a species data file.
// It returns the table of environment variables
// and the catchments in which the species is present.
func Read(r io.Reader) (*catchment.Table, map[int64]bool, error) {
	t, err := catchment.ReadCSV(r)
	if err != nil {
		return nil, nil, err
	}
	pres, err := catchment.Presence(t, SpeciesField)
	if err != nil {
		return nil, nil, fmt.Errorf("expecting field %q", SpeciesField)
	}
	return t.Drop([]string{SpeciesField}), pres, nil
}
