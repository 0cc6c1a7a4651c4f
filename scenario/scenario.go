// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scenario implements land-management scenarios:
// sets of changes applied
// to the environment variables of the catchments.
//
// A scenario is defined in an HCL file.
// Here is an example file:
//
//	name = "NR"
//	huc  = ["030501"]
//
//	change "AnimalOps" {
//	  where = AnimalOps > 0
//	  value = AnimalOps - 1
//	}
//
//	change "V0001E" {
//	  value = min(V0001E * 0.9, 1)
//	}
//
// The name is the prefix of the scenario outputs.
// The huc attribute is an optional list
// of hydrologic unit codes,
// only the catchments with a reach code
// that starts with one of these codes
// are included in the scenario.
// Each change block modifies a field,
// using the value expression,
// in the catchments in which the optional where expression
// is true.
//
// Expressions can use any numeric field of the catchment,
// as well as GRIDCODE and REACHCODE,
// and the functions min, max, abs, floor and ceil.
// Changes are applied in the file order,
// so a change sees the values modified by previous changes.
// A missing value (NaN) in an expression
// makes the expression unknown,
// and the catchment is left unchanged.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/huc"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// A Scenario is a set of changes
// on catchment variables.
type Scenario struct {
	Name    string
	HUC     []string
	Changes []*Change
}

// A Change is a modification
// of a catchment field.
type Change struct {
	Field string
	Where hcl.Expression
	Value hcl.Expression
}

type hclFile struct {
	Name    string       `hcl:"name"`
	HUC     []string     `hcl:"huc,optional"`
	Changes []*hclChange `hcl:"change,block"`
}

type hclChange struct {
	Field string         `hcl:"field,label"`
	Where hcl.Expression `hcl:"where,optional"`
	Value hcl.Expression `hcl:"value"`
}

// Read reads a scenario from an HCL file.
func Read(name string) (*Scenario, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCLFile(name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("on file %q: %v", name, diags.Error())
	}
	s, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return s, nil
}

// Parse parses a scenario from an HCL source.
// The file name is used for error messages.
func Parse(src []byte, name string) (*Scenario, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, errors.New(diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Scenario, error) {
	var hf hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &hf); diags.HasErrors() {
		return nil, errors.New(diags.Error())
	}

	name := strings.TrimSpace(hf.Name)
	if name == "" {
		return nil, errors.New("empty scenario name")
	}
	if strings.ContainsAny(name, " \t/\\") {
		return nil, fmt.Errorf("invalid scenario name %q", name)
	}

	s := &Scenario{Name: name}
	for _, h := range hf.HUC {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		s.HUC = append(s.HUC, h)
	}
	for _, c := range hf.Changes {
		if isNull(c.Value) {
			return nil, fmt.Errorf("change %q: expecting attribute \"value\"", c.Field)
		}
		s.Changes = append(s.Changes, &Change{
			Field: c.Field,
			Where: c.Where,
			Value: c.Value,
		})
	}
	return s, nil
}

// isNull returns true if an expression is undefined.
// A missing optional attribute
// is decoded as a null expression.
func isNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// HUCSet returns the set of hydrologic unit codes
// of the scenario.
// An empty set matches any catchment.
func (s *Scenario) HUCSet() huc.Set {
	return huc.NewSet(s.HUC...)
}

var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
}

// Apply applies the scenario to a catchment table.
// It returns a new table
// with the catchments of the scenario HUCs,
// and the number of catchments modified
// by each change.
func (s *Scenario) Apply(t *catchment.Table) (*catchment.Table, []int, error) {
	for _, c := range s.Changes {
		if _, ok := t.Index(c.Field); !ok {
			return nil, nil, fmt.Errorf("change %q: unknown field", c.Field)
		}
	}

	nt := t.WithHUC(s.HUCSet())
	fields := nt.Fields()
	counts := make([]int, len(s.Changes))
	for i, c := range s.Changes {
		for _, r := range nt.Records() {
			ctx := evalContext(fields, r)
			ok, err := c.where(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("change %q: catchment %d: %v", c.Field, r.GridCode, err)
			}
			if !ok {
				continue
			}
			v, ok, err := c.value(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("change %q: catchment %d: %v", c.Field, r.GridCode, err)
			}
			if !ok {
				continue
			}
			if err := nt.Set(r.GridCode, c.Field, v); err != nil {
				return nil, nil, err
			}
			counts[i]++
		}
	}
	return nt, counts, nil
}

func evalContext(fields []string, r *catchment.Record) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(fields)+2)
	for i, f := range fields {
		v := r.Values[i]
		if math.IsNaN(v) {
			vars[f] = cty.UnknownVal(cty.Number)
			continue
		}
		vars[f] = cty.NumberFloatVal(v)
	}
	vars[catchment.GridCode] = cty.NumberIntVal(r.GridCode)
	vars[catchment.ReachCode] = cty.StringVal(r.ReachCode)

	return &hcl.EvalContext{
		Variables: vars,
		Functions: functions,
	}
}

// where returns true if the change must be applied.
func (c *Change) where(ctx *hcl.EvalContext) (bool, error) {
	if c.Where == nil {
		return true, nil
	}
	v, diags := c.Where.Value(ctx)
	if diags.HasErrors() {
		return false, errors.New(diags.Error())
	}
	if v.IsNull() {
		return true, nil
	}
	if !v.IsKnown() {
		return false, nil
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("where: %v", err)
	}
	return b.True(), nil
}

// value returns the new value of the field.
func (c *Change) value(ctx *hcl.EvalContext) (float64, bool, error) {
	v, diags := c.Value.Value(ctx)
	if diags.HasErrors() {
		return 0, false, errors.New(diags.Error())
	}
	if !v.IsKnown() {
		return 0, false, nil
	}
	if v.IsNull() {
		return 0, false, errors.New("value: null value")
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, false, fmt.Errorf("value: %v", err)
	}
	f, _ := n.AsBigFloat().Float64()
	return f, true, nil
}

// Fields returns the fields modified by the scenario,
// in file order,
// without repetitions.
func (s *Scenario) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, c := range s.Changes {
		if seen[c.Field] {
			continue
		}
		seen[c.Field] = true
		fields = append(fields, c.Field)
	}
	return fields
}
