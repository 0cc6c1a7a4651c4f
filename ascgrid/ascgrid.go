// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ascgrid implements reading and writing
// of ESRI ASCII grid files.
//
// MaxEnt reads projection layers,
// and writes projected predictions,
// as ASCII grids.
// Catchments are not raster cells,
// so catchment values are stored as a grid
// with a single column
// and a row for each catchment:
//
//	ncols         1
//	nrows         3
//	xllcorner     0
//	yllcorner     0
//	cellsize      1
//	NODATA_value  -9999
//	0.53
//	0.41
//	0.77
package ascgrid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// NoData is the default value for missing cells.
const NoData = -9999

// Header is the header of an ASCII grid.
type Header struct {
	NCols     int
	NRows     int
	XLLCorner float64
	YLLCorner float64
	CellSize  float64
	NoData    float64
}

// A Grid is an ASCII grid.
// Missing cells are stored as NaN.
type Grid struct {
	Header
	Values []float64
}

// Column returns a single column grid
// with the given values.
func Column(values []float64) *Grid {
	return &Grid{
		Header: Header{
			NCols:    1,
			NRows:    len(values),
			CellSize: 1,
			NoData:   NoData,
		},
		Values: values,
	}
}

// Write writes a grid.
func (g *Grid) Write(w io.Writer) error {
	if len(g.Values) != g.NCols*g.NRows {
		return fmt.Errorf("got %d cells, want %d", len(g.Values), g.NCols*g.NRows)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols\t%d\n", g.NCols)
	fmt.Fprintf(bw, "nrows\t%d\n", g.NRows)
	fmt.Fprintf(bw, "xllcorner\t%s\n", format(g.XLLCorner))
	fmt.Fprintf(bw, "yllcorner\t%s\n", format(g.YLLCorner))
	fmt.Fprintf(bw, "cellsize\t%s\n", format(g.CellSize))
	fmt.Fprintf(bw, "NODATA_value\t%s\n", format(g.NoData))

	for r := 0; r < g.NRows; r++ {
		row := g.Values[r*g.NCols : (r+1)*g.NCols]
		for c, v := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			if math.IsNaN(v) {
				v = g.NoData
			}
			bw.WriteString(format(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Read reads a grid.
//
// The header keywords are case insensitive.
// A corner given by its center
// (xllcenter, yllcenter)
// is accepted as a corner.
func Read(r io.Reader) (*Grid, error) {
	g := &Grid{
		Header: Header{
			NoData: NoData,
		},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)

	ln := 0
	var values []string
	inHeader := true
	for sc.Scan() {
		ln++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if inHeader {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				if err := g.setHeader(fields); err != nil {
					return nil, fmt.Errorf("on line %d: %v", ln, err)
				}
				continue
			}
			inHeader = false
		}
		values = append(values, fields...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if g.NCols <= 0 || g.NRows <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", g.NCols, g.NRows)
	}
	if len(values) != g.NCols*g.NRows {
		return nil, fmt.Errorf("got %d cells, want %d", len(values), g.NCols*g.NRows)
	}

	g.Values = make([]float64, len(values))
	for i, s := range values {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %v", i, err)
		}
		if v == g.NoData {
			v = math.NaN()
		}
		g.Values[i] = v
	}
	return g, nil
}

func (g *Grid) setHeader(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("invalid header line %q", strings.Join(fields, " "))
	}
	key := strings.ToLower(fields[0])
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("header %q: %v", fields[0], err)
	}

	switch key {
	case "ncols":
		g.NCols = int(v)
	case "nrows":
		g.NRows = int(v)
	case "xllcorner", "xllcenter":
		g.XLLCorner = v
	case "yllcorner", "yllcenter":
		g.YLLCorner = v
	case "cellsize":
		g.CellSize = v
	case "nodata_value":
		g.NoData = v
	default:
		return fmt.Errorf("unknown header %q", fields[0])
	}
	return nil
}
