// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/habuplift/aggregate"
	"github.com/js-arias/habuplift/catchment"
)

// Species reads the table of species occurrences
// as defined in a project.
func (p *Project) Species() (*catchment.Table, error) {
	return p.readTable(Species, "species table")
}

// EnvVars reads the table of environment variables
// as defined in a project.
func (p *Project) EnvVars() (*catchment.Table, error) {
	return p.readTable(EnvVars, "environment variables table")
}

func (p *Project) readTable(set Dataset, desc string) (*catchment.Table, error) {
	name := p.Path(set)
	if name == "" {
		return nil, fmt.Errorf("%s not defined in project %q", desc, p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := catchment.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// HUC12 reads the GRIDCODE to HUC12 lookup table
// as defined in a project.
func (p *Project) HUC12() (map[int64]string, error) {
	name := p.Path(HUC12)
	if name == "" {
		return nil, fmt.Errorf("HUC12 lookup table not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lk, err := aggregate.ReadLookup(f, aggregate.HUC12Field)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return lk, nil
}

// Jar returns the path of the MaxEnt jar file
// as defined in a project.
func (p *Project) Jar() (string, error) {
	name := p.Path(MaxEnt)
	if name == "" {
		return "", fmt.Errorf("maxent jar not defined in project %q", p.name)
	}
	if _, err := os.Stat(name); err != nil {
		return "", fmt.Errorf("maxent jar: %v", err)
	}
	return name, nil
}
