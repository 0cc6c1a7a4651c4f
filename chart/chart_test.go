// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package chart_test

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/chart"
	"github.com/js-arias/habuplift/decile"
)

func TestScale(t *testing.T) {
	for _, name := range []string{"", "iridescent", "Rainbow", "incandescent", "gray"} {
		g, err := chart.Scale(name)
		if err != nil {
			t.Errorf("scale %q: %v", name, err)
			continue
		}
		_, _, _, a := g.Gradient(0.5).RGBA()
		if a == 0 {
			t.Errorf("scale %q: transparent color", name)
		}
	}
	if _, err := chart.Scale("viridis"); err == nil {
		t.Errorf("scale: expecting error on unknown scale")
	}
}

func TestDecileMeans(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}
	dec := decile.Assign(values)

	means, counts := chart.DecileMeans(values, dec)
	wantMeans := []float64{0.5, 2.5, 4.5, 6.5, 8.5, 10.5, 12.5, 14.5, 16.5, 18.5}
	if !reflect.DeepEqual(means, wantMeans) {
		t.Errorf("means: got %v, want %v", means, wantMeans)
	}
	wantCounts := []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	if !reflect.DeepEqual(counts, wantCounts) {
		t.Errorf("counts: got %v, want %v", counts, wantCounts)
	}

	means, counts = chart.DecileMeans([]float64{1, math.NaN()}, []int{10, 3})
	if counts[2] != 0 || !math.IsNaN(means[2]) {
		t.Errorf("NaN values: got mean %v, count %d", means[2], counts[2])
	}
	if means[9] != 1 {
		t.Errorf("decile 10: got %v, want %v", means[9], 1)
	}
}

func TestDeciles(t *testing.T) {
	means := []float64{-0.2, -0.1, -0.05, 0, 0.01, math.NaN(), 0.05, 0.1, 0.15, 0.3}
	p, err := chart.Deciles(means, chart.Iridescent{}, "BF", "average uplift")
	if err != nil {
		t.Fatalf("chart: %v", err)
	}

	name := filepath.Join(t.TempDir(), "BF-deciles.png")
	if err := chart.Save(p, name); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err := os.Stat(name)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() == 0 {
		t.Errorf("empty chart file")
	}
}

const keyData = `# decile colors
decile	color	comment
1	165, 0, 38	strong loss
5	255,255,191
10	0, 104, 55	strong gain
`

func TestReadKey(t *testing.T) {
	k, err := chart.ReadKey(strings.NewReader(keyData))
	if err != nil {
		t.Fatalf("read key: %v", err)
	}

	tests := map[string]struct {
		decile int
		ok     bool
		want   color.Color
	}{
		"first":     {1, true, color.RGBA{165, 0, 38, 255}},
		"middle":    {5, true, color.RGBA{255, 255, 191, 255}},
		"last":      {10, true, color.RGBA{0, 104, 55, 255}},
		"undefined": {3, false, color.RGBA{0, 0, 0, 0}},
	}
	for name, test := range tests {
		c, ok := k.Color(test.decile)
		if ok != test.ok {
			t.Errorf("%s: got %v, want %v", name, ok, test.ok)
		}
		if !reflect.DeepEqual(c, test.want) {
			t.Errorf("%s: color: got %v, want %v", name, c, test.want)
		}
	}

	if c := k.Gradient(0); !reflect.DeepEqual(c, color.RGBA{165, 0, 38, 255}) {
		t.Errorf("gradient 0: got %v", c)
	}
	if c := k.Gradient(1); !reflect.DeepEqual(c, color.RGBA{0, 104, 55, 255}) {
		t.Errorf("gradient 1: got %v", c)
	}
	if c := k.Gradient(4.0 / 9); !reflect.DeepEqual(c, color.RGBA{255, 255, 191, 255}) {
		t.Errorf("gradient decile 5: got %v", c)
	}
}

func TestReadKeyErrors(t *testing.T) {
	tests := map[string]string{
		"no color field": "decile\tname\n1\tred\n",
		"bad decile":     "decile\tcolor\n11\t1,2,3\n",
		"bad color":      "decile\tcolor\n1\t1,2\n",
		"out of range":   "decile\tcolor\n1\t1,2,300\n",
		"empty":          "decile\tcolor\n",
	}
	for name, in := range tests {
		if _, err := chart.ReadKey(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
