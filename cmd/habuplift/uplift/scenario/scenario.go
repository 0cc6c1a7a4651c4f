// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scenario implements a command to apply
// a scenario to the environment variables table.
package scenario

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/scenario"
)

var Command = &command.Command{
	Usage: "scenario [-o|--output <file>] <project-file> <scenario-file>",
	Short: "apply a scenario to the environment variables",
	Long: `
Command scenario reads a scenario file and applies its changes to the
environment variables table of a project. The resulting table only contains
the catchments of the scenario hydrologic units.

The first argument of the command is the name of the project file.

The second argument is the scenario file. Use 'habuplift help scenario-files'
to learn more about scenario files.

The number of catchments modified by each change is printed on the standard
error. By default, the modified table is printed on the standard output. Use
the flag --output, or -o, to define an output file.

The modified table can be used as the source of the projection layers of a
species with 'habuplift maxent project --table'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting scenario file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	s, err := scenario.Read(args[1])
	if err != nil {
		return err
	}
	env, err := p.EnvVars()
	if err != nil {
		return err
	}

	t, counts, err := s.Apply(env)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[1], err)
	}
	fmt.Fprintf(c.Stderr(), "scenario %q: %d catchments\n", s.Name, t.Len())
	for i, ch := range s.Changes {
		fmt.Fprintf(c.Stderr(), "change %q: %d catchments\n", ch.Field, counts[i])
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

	if err := t.WriteCSV(w); err != nil {
		return fmt.Errorf("while writing output: %v", err)
	}
	return nil
}
