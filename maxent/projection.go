// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package maxent

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/js-arias/habuplift/ascgrid"
	"github.com/js-arias/habuplift/catchment"
)

// ProjectionSuffix is the suffix of the folders
// with projection layers.
const ProjectionSuffix = "_Output"

// ProjectionDirs returns the sub-folders of a folder
// that contain projection layers,
// sorted by name.
func ProjectionDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ProjectionSuffix) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, e.Name()))
	}
	slices.Sort(dirs)
	return dirs, nil
}

// GridCodeLayer is the name of the layer
// with the catchment IDs of a projection.
const GridCodeLayer = catchment.GridCode

// WriteProjection writes the projection layers
// of the indicated fields
// as single column ASCII grids
// in a folder.
// An additional layer with the GRIDCODE
// of each catchment
// is written to keep the row order of the grids.
func WriteProjection(dir string, t *catchment.Table, fields []string) error {
	for _, f := range fields {
		col, err := t.Column(f)
		if err != nil {
			return err
		}
		if err := writeGrid(filepath.Join(dir, f+".asc"), col); err != nil {
			return err
		}
	}

	ids := t.GridCodes()
	col := make([]float64, len(ids))
	for i, id := range ids {
		col[i] = float64(id)
	}
	return writeGrid(filepath.Join(dir, GridCodeLayer+".asc"), col)
}

func writeGrid(name string, values []float64) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := ascgrid.Column(values).Write(f); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}

// ReadGrid reads an ASCII grid file.
func ReadGrid(name string) (*ascgrid.Grid, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ascgrid.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return g, nil
}

// ProjectedGrid returns the name of the grid
// written by MaxEnt
// with the projected likelihood of a species
// in a projection folder.
func ProjectedGrid(dir, species string) string {
	return filepath.Join(dir, species+"_"+filepath.Base(dir)+".asc")
}
