// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package aggregate implements a command to aggregate
// catchment values into HUC12 units.
package aggregate

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/js-arias/command"
	agg "github.com/js-arias/habuplift/aggregate"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: `aggregate [--fields <list>] [--area <field>]
	[-o|--output <file>] <project-file> [<table>]`,
	Short: "aggregate catchment values into HUC12 units",
	Long: `
Command aggregate reads a catchment table and writes the area-weighted mean of
its fields for each HUC12 unit, using the GRIDCODE to HUC12 lookup table of
the project.

The first argument of the command is the name of the project file.

The second argument is the catchment table to be aggregated. If no table is
given, the environment variables table of the project will be used.

By default all numeric fields (except the area field) are aggregated. Use the
flag --fields to define a list of fields, separated by commas.

By default, the area of each catchment is read from the field "Shape_Area".
Use the flag --area to set a different field.

Catchments without a HUC12 unit are ignored. Units with a total area of zero
will have empty values.

By default, the output is printed on the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var fieldsFlag string
var areaFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&fieldsFlag, "fields", "", "")
	c.Flags().StringVar(&areaFlag, "area", agg.AreaField, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	lookup, err := p.HUC12()
	if err != nil {
		return err
	}

	var t *catchment.Table
	if len(args) > 1 {
		t, err = readTable(args[1])
	} else {
		t, err = p.EnvVars()
	}
	if err != nil {
		return err
	}

	fields := varlist.Split(fieldsFlag)
	if len(fields) == 0 {
		for _, f := range t.Fields() {
			if f == areaFlag {
				continue
			}
			fields = append(fields, f)
		}
	}
	if slices.Contains(fields, areaFlag) {
		return fmt.Errorf("area field %q can not be aggregated", areaFlag)
	}

	groups, missing, err := agg.Table(t, lookup, areaFlag, fields)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fmt.Fprintf(c.Stderr(), "WARNING: %d catchments without %s unit\n", len(missing), agg.HUC12Field)
	}

	var w io.Writer
	if output == "" {
		w = c.Stdout()
	} else {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	if err := agg.WriteCSV(w, agg.HUC12Field, fields, groups); err != nil {
		return fmt.Errorf("while writing output: %v", err)
	}
	return nil
}

func readTable(name string) (*catchment.Table, error) {
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
