// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package uplift implements the computation
// of habitat uplift:
// the change in habitat likelihood of a species
// between a baseline
// and an alternative scenario.
package uplift

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Baseline is the name of the scenario
// with the current conditions.
const Baseline = "XX"

// Field suffixes used for the fields
// of a species uplift table.
const (
	CurrentSuffix = "_cur"
	UpliftSuffix  = "_up"
)

// Abbrev returns the abbreviated name of a species,
// used as a field prefix.
// The name is made with the genus initial
// and the first six letters of the specific epithet,
// capitalized:
// "Notropis_alborus" is abbreviated as "NAlboru".
func Abbrev(species string) (string, error) {
	genus, epithet, ok := strings.Cut(strings.TrimSpace(species), "_")
	if !ok || genus == "" || epithet == "" {
		return "", fmt.Errorf("invalid species name %q: expecting <genus>_<species>", species)
	}

	g, _ := utf8.DecodeRuneInString(genus)
	ep := []rune(strings.ToLower(epithet))
	if len(ep) > 6 {
		ep = ep[:6]
	}
	ep[0] = unicode.ToUpper(ep[0])
	return string(unicode.ToUpper(g)) + string(ep), nil
}

// A Record is the uplift of a catchment.
type Record struct {
	GridCode int64
	Baseline float64
	Scenario float64
	Uplift   float64
}

// Positional returns the uplift
// of two parallel sequences of likelihoods,
// matched by its position,
// as the values of a projected ASCII grid.
// The IDs are the catchment of each position.
func Positional(ids []int64, baseline, scenario []float64) ([]Record, error) {
	if len(baseline) != len(ids) {
		return nil, fmt.Errorf("baseline: got %d values, want %d", len(baseline), len(ids))
	}
	if len(scenario) != len(ids) {
		return nil, fmt.Errorf("scenario: got %d values, want %d", len(scenario), len(ids))
	}

	recs := make([]Record, len(ids))
	for i, id := range ids {
		recs[i] = Record{
			GridCode: id,
			Baseline: baseline[i],
			Scenario: scenario[i],
			Uplift:   scenario[i] - baseline[i],
		}
	}
	return recs, nil
}

// Joined returns the uplift
// of two sets of likelihoods
// joined by the catchment ID.
// Only catchments present in both sets are used,
// and the records are sorted by ID.
func Joined(baseline, scenario map[int64]float64) []Record {
	var recs []Record
	for id, b := range baseline {
		s, ok := scenario[id]
		if !ok {
			continue
		}
		recs = append(recs, Record{
			GridCode: id,
			Baseline: b,
			Scenario: s,
			Uplift:   s - b,
		})
	}
	slices.SortFunc(recs, func(a, b Record) int {
		return cmp.Compare(a.GridCode, b.GridCode)
	})
	return recs
}

// SpeciesTable returns the uplift table of a species
// in a scenario.
// The table fields are the likelihood under current conditions
// (<abbrev>_cur),
// the likelihood under the scenario
// (<abbrev>_<scenario>),
// and the uplift
// (<abbrev>_up).
func SpeciesTable(species, scenario string, recs []Record) (*Table, error) {
	ab, err := Abbrev(species)
	if err != nil {
		return nil, err
	}
	cur := ab + CurrentSuffix
	alt := ab + "_" + scenario
	up := ab + UpliftSuffix

	t := NewTable([]string{cur, alt, up})
	for _, r := range recs {
		if err := t.Add(r.GridCode, []float64{r.Baseline, r.Scenario, r.Uplift}); err != nil {
			return nil, err
		}
	}
	return t, nil
}
