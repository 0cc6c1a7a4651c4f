// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of habuplift project files.
//
// A habuplift project is a tab-delimited file (TSV)
// used to store the location of the shared tables
// required by the habitat modeling commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// Table of surveyed catchments
	// with a binary column for each species.
	Species Dataset = "species"

	// Table of catchment environment variables.
	EnvVars Dataset = "envvars"

	// Lookup table from catchment GRIDCODE to HUC12.
	HUC12 Dataset = "huc12"

	// Path of the MaxEnt jar file.
	MaxEnt Dataset = "maxent"

	// Root folder that holds a sub-folder
	// for each modeled species.
	Stats Dataset = "stats"
)

// datasets is the order of the datasets
// in a project file.
var datasets = []Dataset{Species, EnvVars, HUC12, MaxEnt, Stats}

// Datasets returns the valid dataset keywords.
func Datasets() []Dataset {
	return slices.Clone(datasets)
}

// ParseDataset returns the dataset
// of a keyword.
// Keywords are case insensitive.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(datasets, d) {
		return "", fmt.Errorf("unknown dataset %q", s)
	}
	return d, nil
}

// A Project represents a collection of paths
// for the datasets of a habitat model.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{paths: make(map[Dataset]string)}
}

const (
	datasetField = "dataset"
	pathField    = "path"
)

// Read reads a project file.
//
// The project file is a TSV file
// with the fields "dataset" and "path".
// Unknown datasets,
// or datasets defined twice,
// are an error.
// Rows with an empty path are ignored.
//
// Here is an example file:
//
//	# habuplift project files
//	dataset	path
//	species	EndriesSpecies.csv
//	envvars	ResponseVars.csv
//	huc12	gridcode-huc12.csv
//	maxent	tools/maxent.jar
//	stats	SpeciesStats
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

func read(r io.Reader) (*Project, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	di, pi := -1, -1
	for i, h := range head {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case datasetField:
			di = i
		case pathField:
			pi = i
		}
	}
	if di < 0 {
		return nil, fmt.Errorf("expecting field %q", datasetField)
	}
	if pi < 0 {
		return nil, fmt.Errorf("expecting field %q", pathField)
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) <= max(di, pi) {
			return nil, fmt.Errorf("on row %d: got %d fields", ln, len(row))
		}

		d, err := ParseDataset(row[di])
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if _, dup := p.paths[d]; dup {
			return nil, fmt.Errorf("on row %d: dataset %q already defined", ln, d)
		}
		path := strings.TrimSpace(row[pi])
		if path == "" {
			continue
		}
		p.paths[d] = path
	}
	return p, nil
}

// Add sets the path of a dataset,
// and returns its previous path.
// An empty path removes the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}
	p.paths[set] = path
	return prev
}

// Name returns the file name of the project.
func (p *Project) Name() string {
	return p.name
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project,
// in project file order.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for _, d := range datasets {
		if _, ok := p.paths[d]; ok {
			sets = append(sets, d)
		}
	}
	return sets
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into its file.
func (p *Project) Write() (err error) {
	if p.name == "" {
		return errors.New("undefined project file name")
	}
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.write(f); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}

func (p *Project) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# habuplift project files\n")
	fmt.Fprintf(bw, "# saved on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	if err := tsv.Write([]string{datasetField, pathField}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, d := range p.Sets() {
		if err := tsv.Write([]string{string(d), p.paths[d]}); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return bw.Flush()
}
