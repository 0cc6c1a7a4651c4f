// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package correlate implements the correlation screening
// of environment variables.
//
// Two screens are used to reduce the number of variables
// used to build a habitat model.
// First, variables without a significant correlation
// with the presence of the species are discarded.
// Then, from each pair of strongly correlated variables,
// one is flagged as redundant.
package correlate

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/habuplift/catchment"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the default significance level
// for the species-habitat correlation.
const Alpha = 0.05

// Pearson returns the Pearson product-moment
// correlation coefficient between x and y.
func Pearson(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}

// PValue returns the two-sided p-value
// of a Pearson correlation coefficient
// calculated from n observations.
func PValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	st := distuv.StudentsT{
		Mu:    0,
		Sigma: 1,
		Nu:    df,
	}
	return 2 * st.Survival(math.Abs(t))
}

// A Response is the correlation
// between an environment variable
// and the presence of a species.
type Response struct {
	Var  string
	Coef float64
	P    float64
}

// Responses returns the correlation
// between the response vector
// and each of the indicated fields of a table,
// in field order.
func Responses(response []float64, t *catchment.Table, fields []string) ([]Response, error) {
	if len(response) != t.Len() {
		return nil, fmt.Errorf("got %d response values, want %d", len(response), t.Len())
	}

	rs := make([]Response, 0, len(fields))
	for _, f := range fields {
		col, err := t.Column(f)
		if err != nil {
			return nil, err
		}
		r := Pearson(response, col)
		rs = append(rs, Response{
			Var:  f,
			Coef: r,
			P:    PValue(r, len(col)),
		})
	}
	return rs, nil
}

// Significant splits a set of responses
// into the responses with a p-value
// smaller or equal to alpha,
// and the rest.
// Undefined coefficients
// (for example, from a constant variable)
// are always discarded.
func Significant(rs []Response, alpha float64) (keep, drop []Response) {
	for _, r := range rs {
		if math.IsNaN(r.Coef) || math.IsNaN(r.P) || r.P > alpha {
			drop = append(drop, r)
			continue
		}
		keep = append(keep, r)
	}
	return keep, drop
}

// A Pair is the correlation between two variables.
type Pair struct {
	Var1 string
	Var2 string
	Coef float64
}

// Pairs returns the pairs of fields
// whose absolute correlation coefficient
// is equal or larger than the threshold.
// Pairs are returned in field order.
func Pairs(t *catchment.Table, fields []string, threshold float64) ([]Pair, error) {
	if len(fields) < 2 {
		return nil, nil
	}
	if t.Len() < 2 {
		return nil, fmt.Errorf("at least two records required, got %d", t.Len())
	}

	x := mat.NewDense(t.Len(), len(fields), nil)
	for j, f := range fields {
		col, err := t.Column(f)
		if err != nil {
			return nil, err
		}
		x.SetCol(j, col)
	}

	var c mat.SymDense
	stat.CorrelationMatrix(&c, x, nil)

	var pairs []Pair
	for i := range fields {
		for j := i + 1; j < len(fields); j++ {
			r := c.At(i, j)
			if math.IsNaN(r) || math.Abs(r) < threshold {
				continue
			}
			pairs = append(pairs, Pair{
				Var1: fields[i],
				Var2: fields[j],
				Coef: r,
			})
		}
	}
	return pairs, nil
}

// Redundant returns the variables
// that can be removed from a set of correlated pairs.
//
// Pairs are visited from the strongest correlation,
// and if none of the variables of the pair
// was already removed,
// the variable with the weakest correlation
// with the species presence is removed.
// Variables without a response
// are removed before any variable with a response.
func Redundant(pairs []Pair, rs []Response) []string {
	resp := make(map[string]float64, len(rs))
	for _, r := range rs {
		resp[r.Var] = math.Abs(r.Coef)
	}
	strength := func(v string) float64 {
		if c, ok := resp[v]; ok && !math.IsNaN(c) {
			return c
		}
		return -1
	}

	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b Pair) int {
		return cmp.Compare(math.Abs(b.Coef), math.Abs(a.Coef))
	})

	removed := make(map[string]bool)
	var rm []string
	for _, p := range sorted {
		if removed[p.Var1] || removed[p.Var2] {
			continue
		}
		v := p.Var2
		if strength(p.Var1) < strength(p.Var2) {
			v = p.Var1
		}
		removed[v] = true
		rm = append(rm, v)
	}
	return rm
}
