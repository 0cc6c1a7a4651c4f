// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Key is a color key
// that defines the color of each decile.
type Key struct {
	color map[int]color.Color
}

// Color returns the color of a decile.
// If no color is defined for the decile,
// it will return transparent black.
func (k *Key) Color(decile int) (color.Color, bool) {
	c, ok := k.color[decile]
	if !ok {
		return color.RGBA{0, 0, 0, 0}, false
	}
	return c, true
}

// Gradient returns the color of the decile
// at a relative position of a ten decile scale,
// i.e., 0 is decile 1,
// and 1 is decile 10.
func (k *Key) Gradient(v float64) color.Color {
	d := int(math.Round(clamp(v)*9)) + 1
	c, _ := k.Color(d)
	return c
}

// ReadKey reads a key file
// used to define the color of each decile.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-decile	the decile, from 1 to 10
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Any other columns will be ignored.
// Here is an example of a key file:
//
//	decile	color	comment
//	1	165, 0, 38	strong loss
//	5	255, 255, 191
//	10	0, 104, 55	strong gain
func ReadKey(r io.Reader) (*Key, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"decile", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := &Key{color: make(map[int]color.Color)}
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) <= max(fields["decile"], fields["color"]) {
			return nil, fmt.Errorf("on row %d: got %d fields", ln, len(row))
		}

		f := "decile"
		d, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if d < 1 || d > 10 {
			return nil, fmt.Errorf("on row %d: field %q: invalid decile %d", ln, f, d)
		}

		f = "color"
		c, err := parseRGB(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		k.color[d] = c
	}
	if len(k.color) == 0 {
		return nil, errors.New("key without colors")
	}
	return k, nil
}

func parseRGB(s string) (color.Color, error) {
	val := strings.Split(s, ",")
	if len(val) != 3 {
		return nil, fmt.Errorf("found %d values, want 3", len(val))
	}

	var rgb [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return nil, fmt.Errorf("[%s value]: %v", name, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("[%s value]: invalid value %d", name, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
