// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package decile assigns values to deciles
// using a fixed-size bucket rule.
//
// Values are sorted in ascending order
// and each value receives the decile
// of its rank in the sorted sequence:
// a rank above N*d/10
// moves the value to the next decile.
// Ties are broken by the input order,
// so equal values can end in different deciles.
package decile

import (
	"cmp"
	"math"
	"slices"
)

// Assign returns the decile (from 1 to 10)
// of each value,
// in the same order as the input.
// NaN values are not ranked
// and its decile is 0.
func Assign(values []float64) []int {
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		idx = append(idx, i)
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})

	dec := make([]int, len(values))
	n := len(idx)
	d := 1
	for i, x := range idx {
		rank := i + 1
		if rank*10 > n*d {
			d++
		}
		dec[x] = d
	}
	return dec
}

// Sizes returns the number of values
// in each decile.
// The first element is the number of
// non ranked values.
func Sizes(dec []int) []int {
	sz := make([]int, 11)
	for _, d := range dec {
		if d < 0 || d > 10 {
			continue
		}
		sz[d]++
	}
	return sz
}

// Breaks returns the largest value
// of each decile.
// A decile without values has a NaN break.
func Breaks(values []float64, dec []int) []float64 {
	br := make([]float64, 10)
	for i := range br {
		br[i] = math.NaN()
	}
	for i, v := range values {
		d := dec[i]
		if d < 1 || d > 10 {
			continue
		}
		if math.IsNaN(br[d-1]) || v > br[d-1] {
			br[d-1] = v
		}
	}
	return br
}
