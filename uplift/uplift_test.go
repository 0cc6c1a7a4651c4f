// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package uplift_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/uplift"
)

func TestAbbrev(t *testing.T) {
	tests := map[string]string{
		"Notropis_alborus":       "NAlboru",
		"etheostoma_collis":      "ECollis",
		"Moxostoma_ROBUSTUM":     "MRobust",
		"Lampsilis_radiata_ssp":  "LRadiat",
		"Fundulus_rathbuni":      "FRathbu",
		"Ambloplites_cavifrons ": "ACavifr",
	}
	for in, want := range tests {
		got, err := uplift.Abbrev(in)
		if err != nil {
			t.Errorf("abbrev %q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("abbrev %q: got %q, want %q", in, got, want)
		}
	}

	for _, in := range []string{"Notropis", "_alborus", "Notropis_"} {
		if _, err := uplift.Abbrev(in); err == nil {
			t.Errorf("abbrev %q: expecting error", in)
		}
	}
}

func TestPositional(t *testing.T) {
	ids := []int64{1001, 1002, 1003}
	base := []float64{0.5, 0.25, 0.125}
	scn := []float64{0.75, 0.125, 0.125}

	got, err := uplift.Positional(ids, base, scn)
	if err != nil {
		t.Fatalf("positional: %v", err)
	}
	want := []uplift.Record{
		{GridCode: 1001, Baseline: 0.5, Scenario: 0.75, Uplift: 0.25},
		{GridCode: 1002, Baseline: 0.25, Scenario: 0.125, Uplift: -0.125},
		{GridCode: 1003, Baseline: 0.125, Scenario: 0.125, Uplift: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positional: got %v, want %v", got, want)
	}

	// uplift is anti-symmetric
	rev, err := uplift.Positional(ids, scn, base)
	if err != nil {
		t.Fatalf("positional: %v", err)
	}
	for i := range got {
		if got[i].Uplift != -rev[i].Uplift {
			t.Errorf("catchment %d: uplift %.6f, reverse %.6f", got[i].GridCode, got[i].Uplift, rev[i].Uplift)
		}
	}

	if _, err := uplift.Positional(ids, base[:2], scn); err == nil {
		t.Errorf("positional: expecting error on length mismatch")
	}
	if _, err := uplift.Positional(ids, base, scn[:1]); err == nil {
		t.Errorf("positional: expecting error on length mismatch")
	}
}

func TestJoined(t *testing.T) {
	base := map[int64]float64{
		1003: 0.125,
		1001: 0.5,
		1002: 0.25,
		1004: 0.9,
	}
	scn := map[int64]float64{
		1002: 0.125,
		1001: 0.75,
		1003: 0.125,
		1005: 0.1,
	}

	got := uplift.Joined(base, scn)
	want := []uplift.Record{
		{GridCode: 1001, Baseline: 0.5, Scenario: 0.75, Uplift: 0.25},
		{GridCode: 1002, Baseline: 0.25, Scenario: 0.125, Uplift: -0.125},
		{GridCode: 1003, Baseline: 0.125, Scenario: 0.125, Uplift: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("joined: got %v, want %v", got, want)
	}

	rev := uplift.Joined(scn, base)
	for i := range got {
		if got[i].GridCode != rev[i].GridCode || got[i].Uplift != -rev[i].Uplift {
			t.Errorf("anti-symmetry: got %v, reverse %v", got[i], rev[i])
		}
	}
}

func TestSpeciesTable(t *testing.T) {
	recs := []uplift.Record{
		{GridCode: 1001, Baseline: 0.5, Scenario: 0.75, Uplift: 0.25},
		{GridCode: 1002, Baseline: 0.25, Scenario: 0.125, Uplift: -0.125},
	}
	tab, err := uplift.SpeciesTable("Notropis_alborus", "BF", recs)
	if err != nil {
		t.Fatalf("species table: %v", err)
	}

	var w bytes.Buffer
	if err := tab.WriteCSV(&w); err != nil {
		t.Fatalf("unable to write table: %v", err)
	}
	want := "GRIDCODE,NAlboru_cur,NAlboru_BF,NAlboru_up\n1001,0.5,0.75,0.25\n1002,0.25,0.125,-0.125\n"
	if w.String() != want {
		t.Errorf("table: got\n%s\nwant\n%s", w.String(), want)
	}

	nt, err := uplift.ReadCSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	if !reflect.DeepEqual(nt, tab) {
		t.Errorf("read: got %v, want %v", nt, tab)
	}
	if up := nt.UpliftFields(); !reflect.DeepEqual(up, []string{"NAlboru_up"}) {
		t.Errorf("uplift fields: got %v", up)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"no gridcode": "ID,NAlboru_up\n1,0.5\n",
		"bad value":   "GRIDCODE,NAlboru_up\n1,x\n",
		"repeated id": "GRIDCODE,NAlboru_up\n1,0.5\n1,0.2\n",
		"repeated":    "GRIDCODE,NAlboru_up,NAlboru_up\n1,0.5,0.5\n",
	}
	for name, in := range tests {
		if _, err := uplift.ReadCSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func newMerged(t testing.TB) *uplift.Table {
	t.Helper()

	a := uplift.NewTable([]string{"NAlboru_cur", "NAlboru_BF", "NAlboru_up"})
	a.Add(1001, []float64{0.5, 0.75, 0.25})
	a.Add(1002, []float64{0.5, 0.25, -0.25})
	a.Add(1003, []float64{0.5, 0.5, 0})

	b := uplift.NewTable([]string{"ECollis_cur", "ECollis_BF", "ECollis_up"})
	b.Add(1002, []float64{0.25, 0.75, 0.5})
	b.Add(1001, []float64{0.5, 0.25, -0.25})
	b.Add(1004, []float64{0.5, 0.625, 0.125})

	m, err := uplift.Merge(a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	return m
}

func TestMerge(t *testing.T) {
	m := newMerged(t)

	if ids := m.GridCodes(); !reflect.DeepEqual(ids, []int64{1001, 1002, 1003, 1004}) {
		t.Errorf("gridcodes: got %v", ids)
	}
	want := []string{"NAlboru_cur", "NAlboru_BF", "NAlboru_up", "ECollis_cur", "ECollis_BF", "ECollis_up"}
	if f := m.Fields(); !reflect.DeepEqual(f, want) {
		t.Errorf("fields: got %v, want %v", f, want)
	}
	if v, _ := m.Value(1002, "ECollis_up"); v != 0.5 {
		t.Errorf("1002 ECollis_up: got %v, want %v", v, 0.5)
	}
	if v, _ := m.Value(1004, "NAlboru_up"); !math.IsNaN(v) {
		t.Errorf("1004 NAlboru_up: got %v, want NaN", v)
	}
	if v, _ := m.Value(1003, "ECollis_up"); !math.IsNaN(v) {
		t.Errorf("1003 ECollis_up: got %v, want NaN", v)
	}

	if _, err := uplift.Merge(m, uplift.NewTable([]string{"ECollis_up"})); err == nil {
		t.Errorf("merge: expecting error on repeated field")
	}
}

func TestAverage(t *testing.T) {
	m := newMerged(t)
	if err := m.Average("BF_avgUplift"); err != nil {
		t.Fatalf("average: %v", err)
	}

	got, _ := m.Column("BF_avgUplift")
	want := []float64{0, 0.125, 0, 0.125}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("average: got %v, want %v", got, want)
	}

	if err := uplift.NewTable([]string{"a_cur"}).Average("avg"); err == nil {
		t.Errorf("average: expecting error on table without uplift fields")
	}
}

func TestSummary(t *testing.T) {
	m := newMerged(t)
	if err := m.Summary(0.1, -0.1); err != nil {
		t.Fatalf("summary: %v", err)
	}

	tests := map[string][]float64{
		uplift.MinUplift: {-0.25, -0.25, 0, 0.125},
		uplift.MaxUplift: {0.25, 0.5, 0, 0.125},
		uplift.RngUplift: {0.5, 0.75, 0, 0},
		uplift.PctAbove:  {0.5, 0.5, 0, 0.5},
		uplift.PctBelow:  {0.5, 0.5, 0, 0},
	}
	for f, want := range tests {
		got, err := m.Column(f)
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", f, got, want)
		}
	}

	// summary fields are not uplift fields
	// and they are overwritten
	if err := m.Summary(1, -1); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got, _ := m.Column(uplift.PctAbove); !reflect.DeepEqual(got, []float64{0, 0, 0, 0}) {
		t.Errorf("%s: got %v", uplift.PctAbove, got)
	}
	if n := len(m.Fields()); n != 11 {
		t.Errorf("fields: got %d, want %d", n, 11)
	}
}

func TestDecile(t *testing.T) {
	tab := uplift.NewTable([]string{"BF_avgUplift"})
	for i := 0; i < 20; i++ {
		tab.Add(int64(2000-i), []float64{float64(i) / 20})
	}
	if err := tab.Decile("BF_avgUplift", "BF_decile"); err != nil {
		t.Fatalf("decile: %v", err)
	}
	got, _ := tab.Column("BF_decile")
	want := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decile: got %v, want %v", got, want)
	}

	if err := tab.Decile("unknown", "dec"); err == nil {
		t.Errorf("decile: expecting error on unknown field")
	}
}

func TestCleanGrids(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"GRIDCODE.asc",
		"Notropis_alborus_BF_Output.asc",
		"V0001E.asc",
		"StreamOrde.asc",
		"maxent.log",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	removed, err := uplift.CleanGrids(dir, "Notropis_alborus")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	slices.Sort(removed)
	if !reflect.DeepEqual(removed, []string{"StreamOrde.asc", "V0001E.asc"}) {
		t.Errorf("removed: got %v", removed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	want := []string{"GRIDCODE.asc", "Notropis_alborus_BF_Output.asc", "maxent.log"}
	if !reflect.DeepEqual(left, want) {
		t.Errorf("files: got %v, want %v", left, want)
	}
}
