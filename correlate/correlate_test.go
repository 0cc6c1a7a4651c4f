// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package correlate_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/correlate"
)

func pearson(x, y []float64) float64 {
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(len(x))
	my /= float64(len(y))

	var sxy, sxx, syy float64
	for i := range x {
		sxy += (x[i] - mx) * (y[i] - my)
		sxx += (x[i] - mx) * (x[i] - mx)
		syy += (y[i] - my) * (y[i] - my)
	}
	return sxy / math.Sqrt(sxx*syy)
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{2, 1, 4, 3, 7, 5, 6, 9, 10, 8}

	r := correlate.Pearson(x, y)
	if want := pearson(x, y); math.Abs(r-want) > 1e-12 {
		t.Errorf("pearson: got %.6f, want %.6f", r, want)
	}
	if math.Abs(r-0.903030) > 1e-6 {
		t.Errorf("pearson: got %.6f, want %.6f", r, 0.903030)
	}
	if s := correlate.Pearson(y, x); s != r {
		t.Errorf("pearson: not symmetric: %.6f != %.6f", s, r)
	}
}

func TestPValue(t *testing.T) {
	tests := map[string]struct {
		r    float64
		n    int
		want float64
	}{
		"r=0.5, n=10":  {0.5, 10, 0.141113},
		"r=-0.5, n=10": {-0.5, 10, 0.141113},
		"perfect":      {1, 10, 0},
		"zero":         {0, 25, 1},
	}
	for name, test := range tests {
		p := correlate.PValue(test.r, test.n)
		if math.Abs(p-test.want) > 1e-4 {
			t.Errorf("%s: got %.6f, want %.6f", name, p, test.want)
		}
	}
	if p := correlate.PValue(0.5, 2); !math.IsNaN(p) {
		t.Errorf("small sample: got %.6f, want NaN", p)
	}
}

const data = `Species,GRIDCODE,REACHCODE,V0001E,Slope,Copy,Flat,Noise
1,1,03050102000001,10,1.0,20,5,3
1,2,03050102000002,9,1.2,18,5,1
1,3,03050102000003,8,0.9,16,5,4
1,4,03050102000004,9.5,1.1,19,5,2
0,5,03050102000005,2,3.0,4,5,3
0,6,03050102000006,1,2.8,2,5,1
0,7,03050102000007,3,3.2,6,5,4
0,8,03050102000008,2.5,2.9,5,5,2
`

func readData(t testing.TB) (*catchment.Table, []float64) {
	t.Helper()

	tab, err := catchment.ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	sp, err := tab.Column("Species")
	if err != nil {
		t.Fatalf("unable to read species: %v", err)
	}
	return tab, sp
}

func TestResponses(t *testing.T) {
	tab, sp := readData(t)

	fields := []string{"V0001E", "Slope", "Copy", "Flat", "Noise"}
	rs, err := correlate.Responses(sp, tab, fields)
	if err != nil {
		t.Fatalf("responses: %v", err)
	}
	keep, drop := correlate.Significant(rs, correlate.Alpha)

	var kept, dropped []string
	for _, r := range keep {
		kept = append(kept, r.Var)
	}
	for _, r := range drop {
		dropped = append(dropped, r.Var)
	}
	if want := []string{"V0001E", "Slope", "Copy"}; !reflect.DeepEqual(kept, want) {
		t.Errorf("kept: got %v, want %v", kept, want)
	}
	if want := []string{"Flat", "Noise"}; !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped: got %v, want %v", dropped, want)
	}
	if keep[1].Coef >= 0 {
		t.Errorf("slope: got %.6f, want a negative coefficient", keep[1].Coef)
	}

	if _, err := correlate.Responses(sp[1:], tab, fields); err == nil {
		t.Errorf("responses: expecting error on short response")
	}
}

func TestPairs(t *testing.T) {
	tab, _ := readData(t)

	fields := []string{"V0001E", "Slope", "Copy", "Noise"}
	pairs, err := correlate.Pairs(tab, fields, 0.9)
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	for _, p := range pairs {
		x, _ := tab.Column(p.Var1)
		y, _ := tab.Column(p.Var2)
		if want := pearson(x, y); math.Abs(p.Coef-want) > 1e-9 {
			t.Errorf("pair %s-%s: got %.6f, want %.6f", p.Var1, p.Var2, p.Coef, want)
		}
		if math.Abs(p.Coef) < 0.9 {
			t.Errorf("pair %s-%s: coefficient %.6f below threshold", p.Var1, p.Var2, p.Coef)
		}
	}

	// the screening must not depend on field order
	rev, err := correlate.Pairs(tab, []string{"Noise", "Copy", "Slope", "V0001E"}, 0.9)
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	if len(rev) != len(pairs) {
		t.Fatalf("reversed pairs: got %d pairs, want %d", len(rev), len(pairs))
	}
	coef := make(map[[2]string]float64)
	for _, p := range pairs {
		coef[[2]string{p.Var1, p.Var2}] = p.Coef
	}
	for _, p := range rev {
		c, ok := coef[[2]string{p.Var2, p.Var1}]
		if !ok {
			t.Errorf("pair %s-%s: not found", p.Var2, p.Var1)
			continue
		}
		if math.Abs(c-p.Coef) > 1e-9 {
			t.Errorf("pair %s-%s: got %.6f, want %.6f", p.Var2, p.Var1, p.Coef, c)
		}
	}

	var found bool
	for _, p := range pairs {
		if p.Var1 == "V0001E" && p.Var2 == "Copy" {
			found = true
			if math.Abs(p.Coef-1) > 1e-9 {
				t.Errorf("pair V0001E-Copy: got %.6f, want 1", p.Coef)
			}
		}
		if p.Var1 == "Noise" || p.Var2 == "Noise" {
			t.Errorf("pair %s-%s: unexpected pair", p.Var1, p.Var2)
		}
	}
	if !found {
		t.Errorf("pair V0001E-Copy: not found")
	}
}

func TestRedundant(t *testing.T) {
	pairs := []correlate.Pair{
		{Var1: "A", Var2: "B", Coef: 0.8},
		{Var1: "B", Var2: "C", Coef: -0.95},
		{Var1: "A", Var2: "D", Coef: 0.75},
	}
	rs := []correlate.Response{
		{Var: "A", Coef: 0.30},
		{Var: "B", Coef: -0.50},
		{Var: "C", Coef: 0.20},
		{Var: "D", Coef: 0.40},
	}

	// B-C is the strongest pair, C has the weakest response;
	// A-B is then evaluated: A is weaker than B;
	// A-D is skipped as A was removed.
	want := []string{"C", "A"}
	if got := correlate.Redundant(pairs, rs); !reflect.DeepEqual(got, want) {
		t.Errorf("redundant: got %v, want %v", got, want)
	}
}

func TestResponsesIO(t *testing.T) {
	rs := []correlate.Response{
		{Var: "V0001E", Coef: -0.2134, P: 0.001},
		{Var: "StreamOrde", Coef: 0.1812, P: 0.004},
	}

	var w bytes.Buffer
	if err := correlate.WriteResponses(&w, rs); err != nil {
		t.Fatalf("unable to write responses: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	got, err := correlate.ReadResponses(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read responses: %v", err)
	}
	if !reflect.DeepEqual(got, rs) {
		t.Errorf("responses: got %v, want %v", got, rs)
	}

	// legacy files used a comma and a space as separator
	legacy := "variable, coef, abs_coef, p_value\nV0001E, -0.2134, 0.2134, 0.001\n"
	got, err = correlate.ReadResponses(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("unable to read legacy responses: %v", err)
	}
	if !reflect.DeepEqual(got, rs[:1]) {
		t.Errorf("legacy responses: got %v, want %v", got, rs[:1])
	}
}

func TestPairsIO(t *testing.T) {
	pairs := []correlate.Pair{
		{Var1: "NLCD4", Var2: "NLCD8", Coef: -0.9123},
		{Var1: "V0001E", Var2: "Slope", Coef: 0.7331},
	}

	var w bytes.Buffer
	if err := correlate.WritePairs(&w, pairs); err != nil {
		t.Fatalf("unable to write pairs: %v", err)
	}
	got, err := correlate.ReadPairs(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read pairs: %v", err)
	}
	if !reflect.DeepEqual(got, pairs) {
		t.Errorf("pairs: got %v, want %v", got, pairs)
	}
}
