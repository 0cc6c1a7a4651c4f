// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package run implements a command to execute
// a MaxEnt batch file.
package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
)

var Command = &command.Command{
	Usage: "run [--scenario <name>] <project-file> <species>",
	Short: "run MaxEnt",
	Long: `
Command run reads the MaxEnt batch file of a species and executes it. The
output of MaxEnt is printed on the standard output and the standard error.

The first argument of the command is the name of the project file.

The second argument is the name of the species. The batch file must be
already written (use 'habuplift maxent batch').

By default, the RunMaxent.bat file of the species is executed. Use the flag
--scenario to execute the batch file of a scenario (<scenario>_RunMaxent.bat,
written with 'habuplift maxent project').

The MaxEnt process is killed if the command is interrupted.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var scenarioFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&scenarioFlag, "scenario", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting species name")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	dir, err := p.SpeciesDir(args[1], false)
	if err != nil {
		return err
	}

	name := filepath.Join(dir, project.BatchFile)
	if scenarioFlag != "" {
		name = filepath.Join(dir, project.ScenarioBatch(scenarioFlag))
	}
	b, err := readBatch(name)
	if err != nil {
		return err
	}
	if out, ok := b.Get("outputdirectory"); ok && out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(c.Stderr(), "running %s\n", name)
	return maxent.Run(ctx, b, c.Stdout(), c.Stderr())
}

func readBatch(name string) (*maxent.Batch, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := maxent.ReadBatch(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return b, nil
}
