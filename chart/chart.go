// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package chart implements charts
// of the uplift of a scenario.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Scale returns a color scale by its name.
// Valid names are:
// "iridescent" (the default),
// "rainbow",
// "incandescent",
// and "gray".
func Scale(name string) (Gradienter, error) {
	switch strings.ToLower(name) {
	case "", "iridescent":
		return Iridescent{}, nil
	case "rainbow":
		return RainbowPurpleToRed{}, nil
	case "incandescent":
		return Incandescent{}, nil
	case "gray":
		return LightGrayScale{}, nil
	}
	return nil, fmt.Errorf("unknown color scale %q", name)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LightGrayScale returns a gray scale
// between 200 (light gray)
// and 0 (black).
type LightGrayScale struct{}

func (l LightGrayScale) Gradient(v float64) color.Color {
	c := 200 - uint8(clamp(v)*200)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// DecileMeans returns the mean value
// and the number of values
// of each decile (from 1 to 10).
// Values without decile (0),
// and NaN values are ignored.
// A decile without values has a NaN mean.
func DecileMeans(values []float64, dec []int) (means []float64, counts []int) {
	means = make([]float64, 10)
	counts = make([]int, 10)
	for i, v := range values {
		d := dec[i]
		if d < 1 || d > 10 || math.IsNaN(v) {
			continue
		}
		means[d-1] += v
		counts[d-1]++
	}
	for i, n := range counts {
		if n == 0 {
			means[i] = math.NaN()
			continue
		}
		means[i] /= float64(n)
	}
	return means, counts
}

// Deciles returns a bar chart
// with the mean value of each decile.
// Each bar is colored with the color scale.
func Deciles(means []float64, g Gradienter, title, yLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "decile"
	p.Y.Label.Text = yLabel

	w := vg.Points(20)
	names := make([]string, len(means))
	for i, m := range means {
		names[i] = strconv.Itoa(i + 1)
		if math.IsNaN(m) {
			continue
		}
		bar, err := plotter.NewBarChart(plotter.Values{m}, w)
		if err != nil {
			return nil, fmt.Errorf("while building chart: %v", err)
		}
		bar.XMin = float64(i)
		bar.LineStyle.Width = vg.Length(0)
		v := 0.0
		if len(means) > 1 {
			v = float64(i) / float64(len(means)-1)
		}
		bar.Color = g.Gradient(v)
		p.Add(bar)
	}
	p.NominalX(names...)
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save saves a chart
// as an image file.
// The format is defined by the file extension.
func Save(p *plot.Plot, name string) error {
	return p.Save(6*vg.Inch, 4*vg.Inch, name)
}
