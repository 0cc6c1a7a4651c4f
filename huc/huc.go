// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package huc implements helpers for hydrologic unit codes
// (HUCs).
//
// Hydrologic unit codes are hierarchical:
// the first two digits identify a region,
// and each additional pair of digits
// identifies a nested unit,
// so a watershed is selected
// by matching the prefix of a code.
package huc

import (
	"fmt"
	"slices"
	"strings"
)

// Hydrologic unit levels,
// as the number of digits in the code.
const (
	HUC2  = 2
	HUC4  = 4
	HUC6  = 6
	HUC8  = 8
	HUC10 = 10
	HUC12 = 12
)

// Prefix returns the hydrologic unit of the given level
// that contains a code.
// If the code is shorter than the level,
// the whole code is returned.
func Prefix(code string, level int) string {
	code = strings.TrimSpace(code)
	if len(code) < level {
		return code
	}
	return code[:level]
}

// A Set is a collection of hydrologic unit prefixes.
type Set map[string]bool

// NewSet returns a set with the given prefixes.
// Empty prefixes are ignored.
func NewSet(prefixes ...string) Set {
	s := make(Set, len(prefixes))
	for _, p := range prefixes {
		s.Add(p)
	}
	return s
}

// FromCodes returns a set with the hydrologic units
// of the given level
// that contain the codes.
func FromCodes(codes []string, level int) Set {
	s := make(Set)
	for _, c := range codes {
		s.Add(Prefix(c, level))
	}
	return s
}

// Add adds a prefix to the set.
func (s Set) Add(prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return
	}
	s[prefix] = true
}

// Match returns true if the code starts with
// any of the prefixes in the set.
// An empty set matches any code.
func (s Set) Match(code string) bool {
	if len(s) == 0 {
		return true
	}
	code = strings.TrimSpace(code)
	for p := range s {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// Codes returns the prefixes of the set,
// sorted.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for p := range s {
		codes = append(codes, p)
	}
	slices.Sort(codes)
	return codes
}

// Where returns the set as a query clause
// over the given field.
func (s Set) Where(field string) string {
	if len(s) == 0 {
		return ""
	}
	codes := s.Codes()
	terms := make([]string, 0, len(codes))
	for _, c := range codes {
		terms = append(terms, fmt.Sprintf("%s LIKE '%s%%'", field, c))
	}
	return strings.Join(terms, " OR ")
}
