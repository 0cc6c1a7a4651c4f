// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ascgrid_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/ascgrid"
)

func TestColumn(t *testing.T) {
	g := ascgrid.Column([]float64{0.53, math.NaN(), 0.77})

	var w bytes.Buffer
	if err := g.Write(&w); err != nil {
		t.Fatalf("unable to write grid: %v", err)
	}
	want := "ncols\t1\nnrows\t3\nxllcorner\t0\nyllcorner\t0\ncellsize\t1\nNODATA_value\t-9999\n0.53\n-9999\n0.77\n"
	if got := w.String(); got != want {
		t.Errorf("output: got\n%q\nwant\n%q", got, want)
	}

	ng, err := ascgrid.Read(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read grid: %v", err)
	}
	if ng.NCols != 1 || ng.NRows != 3 {
		t.Errorf("size: got %dx%d, want 1x3", ng.NCols, ng.NRows)
	}
	if ng.Values[0] != 0.53 || !math.IsNaN(ng.Values[1]) || ng.Values[2] != 0.77 {
		t.Errorf("values: got %v", ng.Values)
	}
}

func TestRead(t *testing.T) {
	in := `NCOLS 2
NROWS 2
XLLCENTER 10
YLLCENTER 20
CELLSIZE 0.5
NODATA_VALUE -1
1 2
-1 4
`
	g, err := ascgrid.Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read grid: %v", err)
	}
	if g.XLLCorner != 10 || g.YLLCorner != 20 || g.CellSize != 0.5 {
		t.Errorf("header: got %+v", g.Header)
	}
	if len(g.Values) != 4 || g.Values[3] != 4 || !math.IsNaN(g.Values[2]) {
		t.Errorf("values: got %v", g.Values)
	}

	bad := map[string]string{
		"short":  "ncols 1\nnrows 3\n1\n2\n",
		"header": "ncols 1\nnrows 1\nunknown 3\n1\n",
		"size":   "1\n2\n",
	}
	for name, in := range bad {
		if _, err := ascgrid.Read(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
