// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package uplift

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/habuplift/catchment"
)

// CleanGrids removes the projection layers
// from a scenario folder,
// keeping only the ASCII grids
// with the projected likelihood of the species,
// and the grid with the catchment IDs.
// It returns the names of the removed files.
func CleanGrids(dir, species string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, ".asc") {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if strings.Contains(base, species) || base == catchment.GridCode {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}
