// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package varlist implements reading and writing
// of variable lists.
//
// A variable list is a text file
// with the name of a variable in each line.
// It is used to keep the set of environment variables
// included in a habitat model.
package varlist

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Read reads a list of variables.
//
// Empty lines,
// and lines starting with '#',
// are ignored.
// If a line contains commas,
// only the first field is used.
func Read(r io.Reader) ([]string, error) {
	var vars []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, ","); i >= 0 {
			line = line[:i]
		}
		v := strings.TrimSpace(strings.Trim(line, `"`))
		if v == "" {
			continue
		}
		if seen[v] {
			return nil, fmt.Errorf("on line %d: repeated variable %q", ln, v)
		}
		seen[v] = true
		vars = append(vars, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Write writes a list of variables.
func Write(w io.Writer, vars []string) error {
	bw := bufio.NewWriter(w)
	for _, v := range vars {
		fmt.Fprintf(bw, "%s\n", v)
	}
	return bw.Flush()
}

// Exclude returns the variables
// that are not in the names list.
func Exclude(vars, names []string) []string {
	var keep []string
	for _, v := range vars {
		if slices.Contains(names, v) {
			continue
		}
		keep = append(keep, v)
	}
	return keep
}

// Split splits a list of names
// separated by commas or semicolons.
func Split(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var names []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		names = append(names, f)
	}
	return names
}
