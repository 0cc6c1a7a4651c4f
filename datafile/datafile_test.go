// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package datafile_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/datafile"
)

var occData = `GRIDCODE,REACHCODE,Notropis_alborus,Etheostoma_collis
1001,03050102000123,1,0
1003,03050103000001,0,1
1005,03050105000002,1,
`

var envData = `GRIDCODE,REACHCODE,Shape_Length,Shape_Area,StreamOrde,V0001E,AnimalOps
1001,03050102000123,10,100,2,0.53,0
1002,03050102000456,12,90,1,0.41,3
1003,03050103000001,8,80,3,0.77,-9999
1004,03050105000001,9,70,1,0.12,1
1005,03050105000002,7,60,2,0.33,0
1006,03040201000001,6,50,4,0.91,2
`

func readTable(t testing.TB, in string) *catchment.Table {
	t.Helper()
	tab, err := catchment.ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	return tab
}

func TestBuild(t *testing.T) {
	occ := readTable(t, occData)
	env := readTable(t, envData)

	d, err := datafile.Build("Notropis_alborus", occ, env)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := d.HUC8.Codes(); !reflect.DeepEqual(got, []string{"03050102", "03050105"}) {
		t.Errorf("HUC8: got %v", got)
	}
	if got := d.HUC6.Codes(); !reflect.DeepEqual(got, []string{"030501"}) {
		t.Errorf("HUC6: got %v", got)
	}
	if got := d.Table.GridCodes(); !reflect.DeepEqual(got, []int64{1001, 1002, 1004, 1005}) {
		t.Errorf("catchments: got %v", got)
	}
	if got := d.Table.Fields(); !reflect.DeepEqual(got, []string{"StreamOrde", "V0001E", "AnimalOps"}) {
		t.Errorf("fields: got %v", got)
	}
	if len(d.NoData) != 0 {
		t.Errorf("no data: got %v", d.NoData)
	}

	var w bytes.Buffer
	pres, back, err := d.Write(&w)
	if err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	if pres != 2 || back != 2 {
		t.Errorf("records: got %d presences, %d background, want 2, 2", pres, back)
	}
	want := `Species,GRIDCODE,REACHCODE,StreamOrde,V0001E,AnimalOps
1,1001,03050102000123,2,0.53,0
1,1005,03050105000002,2,0.33,0
0,1002,03050102000456,1,0.41,3
0,1004,03050105000001,1,0.12,1
`
	if w.String() != want {
		t.Errorf("data: got\n%s\nwant\n%s", w.String(), want)
	}

	tab, p, err := datafile.Read(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	if !reflect.DeepEqual(p, map[int64]bool{1001: true, 1005: true}) {
		t.Errorf("presence: got %v", p)
	}
	if !reflect.DeepEqual(tab.Fields(), d.Table.Fields()) {
		t.Errorf("read fields: got %v", tab.Fields())
	}
	if tab.Len() != 4 {
		t.Errorf("read catchments: got %d, want %d", tab.Len(), 4)
	}
}

func TestBuildNoData(t *testing.T) {
	occ := readTable(t, occData)
	env := readTable(t, envData)

	d, err := datafile.Build("Etheostoma_collis", occ, env)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(d.NoData, []string{"AnimalOps"}) {
		t.Errorf("no data: got %v", d.NoData)
	}
	if got := d.Table.Fields(); !reflect.DeepEqual(got, []string{"StreamOrde", "V0001E"}) {
		t.Errorf("fields: got %v", got)
	}
	if !reflect.DeepEqual(d.Presence, map[int64]bool{1003: true}) {
		t.Errorf("presence: got %v", d.Presence)
	}

	if _, err := datafile.Build("Moxostoma_robustum", occ, env); err == nil {
		t.Errorf("build: expecting error on unknown species")
	}
}
