// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package update implements a command to update
// the values of a catchment table
// from another table.
package update

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/varlist"
)

var Command = &command.Command{
	Usage: `update --from <table> [--fields <list>]
	[-o|--output <file>] <table>`,
	Short: "update the values of a catchment table",
	Long: `
Command update reads a catchment table and replaces the values of its fields
with the values of the records of another table with the same GRIDCODE.

The argument of the command is the table to be updated.

The flag --from is required and defines the table with the new values.

By default, all the numeric fields shared by both tables are updated. Use the
flag --fields to define a list of fields, separated by commas. A field that is
not present in either table is an error.

Records without a match in the source table keep their values.

By default, the updated table replaces the input table. Use the flag
--output, or -o, to define a different output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var fromFlag string
var fieldsFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&fromFlag, "from", "", "")
	c.Flags().StringVar(&fieldsFlag, "fields", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting table file")
	}
	if fromFlag == "" {
		return c.UsageError("flag --from undefined")
	}

	name := args[0]
	t, err := readTable(name)
	if err != nil {
		return err
	}
	from, err := readTable(fromFlag)
	if err != nil {
		return err
	}

	fields := varlist.Split(fieldsFlag)
	if len(fields) == 0 {
		for _, f := range t.Fields() {
			if _, ok := from.Index(f); ok {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("tables %q and %q without shared fields", name, fromFlag)
	}

	n, err := t.Update(from, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "updated %d records, %d fields\n", n, len(fields))

	if output == "" {
		output = name
	}
	return writeTable(output, t)
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

func writeTable(name string, t *catchment.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := t.WriteCSV(f); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
