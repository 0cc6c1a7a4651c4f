// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package catchment_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/huc"
)

const envData = `# catchment attributes
OBJECTID,GRIDCODE,REACHCODE,FTYPE,LENGTHKM,StreamOrde,V0001E,AnimalOps
1,1001,03050102000123,StreamRiver,1.25,2,0.53,0
2,1002,03050102000456,StreamRiver,0.87,1,0.41,3
3,1003,03050103000001,ArtificialPath,2.10,3,0.77,-9999
4,1004,03040201000001,StreamRiver,0.5,1,,1
`

func readEnv(t testing.TB) *catchment.Table {
	t.Helper()

	tab, err := catchment.ReadCSV(strings.NewReader(envData))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	return tab
}

func TestReadCSV(t *testing.T) {
	tab := readEnv(t)

	fields := []string{"LENGTHKM", "StreamOrde", "V0001E", "AnimalOps"}
	if got := tab.Fields(); !reflect.DeepEqual(got, fields) {
		t.Errorf("fields: got %v, want %v", got, fields)
	}
	if got := tab.Skipped(); !reflect.DeepEqual(got, []string{"FTYPE"}) {
		t.Errorf("skipped: got %v, want %v", got, []string{"FTYPE"})
	}
	if got := tab.GridCodes(); !reflect.DeepEqual(got, []int64{1001, 1002, 1003, 1004}) {
		t.Errorf("gridcodes: got %v", got)
	}

	r, ok := tab.Row(1002)
	if !ok {
		t.Fatalf("catchment 1002 not found")
	}
	if r.ReachCode != "03050102000456" {
		t.Errorf("reach code: got %q, want %q", r.ReachCode, "03050102000456")
	}
	if v, _ := tab.Value(1002, "AnimalOps"); v != 3 {
		t.Errorf("value: got %.3f, want %.3f", v, 3.0)
	}
	if v, _ := tab.Value(1004, "V0001E"); !math.IsNaN(v) {
		t.Errorf("empty value: got %.3f, want NaN", v)
	}

	nd := []string{"V0001E", "AnimalOps"}
	if got := tab.WithNoData(); !reflect.DeepEqual(got, nd) {
		t.Errorf("no data fields: got %v, want %v", got, nd)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"no gridcode":  "REACHCODE,V\n0305,1\n",
		"bad gridcode": "GRIDCODE,V\nx,1\n",
		"repeated":     "GRIDCODE,V\n1,1\n1,2\n",
	}
	for name, data := range tests {
		if _, err := catchment.ReadCSV(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	tab := readEnv(t)

	var w bytes.Buffer
	if err := tab.WriteCSV(&w); err != nil {
		t.Fatalf("unable to write table: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nt, err := catchment.ReadCSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	if got := nt.Fields(); !reflect.DeepEqual(got, tab.Fields()) {
		t.Errorf("fields: got %v, want %v", got, tab.Fields())
	}
	for _, r := range tab.Records() {
		nr, ok := nt.Row(r.GridCode)
		if !ok {
			t.Errorf("catchment %d not found", r.GridCode)
			continue
		}
		if nr.ReachCode != r.ReachCode {
			t.Errorf("catchment %d: reach code: got %q, want %q", r.GridCode, nr.ReachCode, r.ReachCode)
		}
		for i, v := range r.Values {
			w := nr.Values[i]
			if math.IsNaN(v) && math.IsNaN(w) {
				continue
			}
			if v != w {
				t.Errorf("catchment %d: field %d: got %v, want %v", r.GridCode, i, w, v)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	tab := readEnv(t)

	sel := tab.WithHUC(huc.NewSet("03050102"))
	if got := sel.GridCodes(); !reflect.DeepEqual(got, []int64{1001, 1002}) {
		t.Errorf("huc select: got %v", got)
	}

	kept, err := tab.Keep([]string{"V0001E", "LENGTHKM"})
	if err != nil {
		t.Fatalf("keep: %v", err)
	}
	if got := kept.Fields(); !reflect.DeepEqual(got, []string{"V0001E", "LENGTHKM"}) {
		t.Errorf("keep: got %v", got)
	}
	if v, _ := kept.Value(1003, "LENGTHKM"); v != 2.10 {
		t.Errorf("keep: value: got %v, want %v", v, 2.10)
	}
	if _, err := tab.Keep([]string{"unknown"}); err == nil {
		t.Errorf("keep: expecting error on unknown field")
	}

	dropped := tab.Drop([]string{"AnimalOps", "unknown"})
	if got := dropped.Fields(); !reflect.DeepEqual(got, []string{"LENGTHKM", "StreamOrde", "V0001E"}) {
		t.Errorf("drop: got %v", got)
	}
}

func TestUpdate(t *testing.T) {
	tab := readEnv(t)
	orig := tab.Clone()

	upd := catchment.New([]string{"AnimalOps"})
	upd.Add(1002, "", []float64{1})
	upd.Add(9999, "", []float64{5})

	n, err := tab.Update(upd, []string{"AnimalOps"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Errorf("update: got %d records, want 1", n)
	}
	if v, _ := tab.Value(1002, "AnimalOps"); v != 1 {
		t.Errorf("update: got %v, want 1", v)
	}
	if v, _ := orig.Value(1002, "AnimalOps"); v != 3 {
		t.Errorf("clone: modified by update: got %v, want 3", v)
	}
	if _, err := tab.Update(upd, []string{"V0001E"}); err == nil {
		t.Errorf("update: expecting error on missing source field")
	}
}

func TestPresence(t *testing.T) {
	sp := `GRIDCODE,REACHCODE,Notropis_alborus,Etheostoma_collis
1001,03050102000123,1,
1002,03050102000456,,1
1003,03050103000001,1,0
`
	tab, err := catchment.ReadCSV(strings.NewReader(sp))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}

	p, err := catchment.Presence(tab, "Notropis_alborus")
	if err != nil {
		t.Fatalf("presence: %v", err)
	}
	want := map[int64]bool{1001: true, 1003: true}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("presence: got %v, want %v", p, want)
	}
	if _, err := catchment.Presence(tab, "Lepomis_auritus"); err == nil {
		t.Errorf("presence: expecting error on unknown species")
	}
}
