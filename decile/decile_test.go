// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package decile_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/habuplift/decile"
)

func TestAssign(t *testing.T) {
	tests := map[string]struct {
		values []float64
		want   []int
	}{
		"ten": {
			values: []float64{0.9, 0.1, 0.8, 0.2, 0.7, 0.3, 0.6, 0.4, 0.5, 0.0},
			want:   []int{10, 2, 9, 3, 8, 4, 7, 5, 6, 1},
		},
		"ties by input order": {
			values: []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			want:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		"twenty": {
			values: []float64{
				20, 19, 18, 17, 16, 15, 14, 13, 12, 11,
				10, 9, 8, 7, 6, 5, 4, 3, 2, 1,
			},
			want: []int{
				10, 10, 9, 9, 8, 8, 7, 7, 6, 6,
				5, 5, 4, 4, 3, 3, 2, 2, 1, 1,
			},
		},
		"with NaN": {
			values: []float64{3, math.NaN(), 1, 2},
			want:   []int{4, 0, 2, 3},
		},
		"empty": {
			values: nil,
			want:   []int{},
		},
	}

	for name, test := range tests {
		got := decile.Assign(test.values)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestAssignSizes(t *testing.T) {
	for _, n := range []int{10, 25, 100, 137, 1000} {
		values := make([]float64, n)
		for i := range values {
			// a permutation of 0..n-1
			values[i] = float64((i * 7919) % n)
		}
		if n%7919 == 0 {
			t.Fatalf("n = %d: invalid permutation", n)
		}

		dec := decile.Assign(values)
		sz := decile.Sizes(dec)
		if sz[0] != 0 {
			t.Errorf("n = %d: %d values without decile", n, sz[0])
		}
		lo, hi := n/10, (n+9)/10
		for d := 1; d <= 10; d++ {
			if sz[d] < lo || sz[d] > hi {
				t.Errorf("n = %d: decile %d: size %d, want between %d and %d", n, d, sz[d], lo, hi)
			}
		}

		br := decile.Breaks(values, dec)
		for d := 1; d < 10; d++ {
			if br[d] <= br[d-1] {
				t.Errorf("n = %d: break %d (%.0f) not above break %d (%.0f)", n, d+1, br[d], d, br[d-1])
			}
		}
		if br[9] != float64(n-1) {
			t.Errorf("n = %d: last break %.0f, want %d", n, br[9], n-1)
		}
	}
}
