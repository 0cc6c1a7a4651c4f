// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch implements a command to write
// the MaxEnt batch file of a species.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/maxent"
	"github.com/js-arias/habuplift/project"
	"github.com/js-arias/habuplift/swd"
)

var Command = &command.Command{
	Usage: `batch [--autorun] [--threads <number>] [--memory <flag>]
	<project-file> <species>`,
	Short: "write a MaxEnt batch file",
	Long: `
Command batch writes a batch file with the MaxEnt command line used to model
a species.

The first argument of the command is the name of the project file. The
project must define the path of the maxent.jar file.

The second argument is the name of the species. The SWD file of the species
must be already written (use 'habuplift maxent swd').

The SWD file is used both as the samples and the environment layers. The
output directory is the Output folder of the species (it will be created if
it does not exist). Response curves, pictures, plots, and jackknife are
disabled, and output files are overwritten. The StreamOrde and FCODE
variables, if included, are set as categorical. Any folder of the species
ending in "_Output" (for example XX_Output) is added as projection layers.

By default, MaxEnt runs with 16 threads. Use the flag --threads to set a
different number. The flag --memory sets the memory flag of the Java virtual
machine (by default "-mx2048m"). If the flag --autorun is set, MaxEnt will
run without user interaction.

The batch file is written in the species folder as RunMaxent.bat. Use
'habuplift maxent run' to execute it.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var autorun bool
var threads int
var memory string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&autorun, "autorun", false, "")
	c.Flags().IntVar(&threads, "threads", maxent.Threads, "")
	c.Flags().StringVar(&memory, "memory", maxent.Memory, "")
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
	jar, err := p.Jar()
	if err != nil {
		return err
	}
	species := args[1]
	dir, err := p.SpeciesDir(species, false)
	if err != nil {
		return err
	}

	samples := filepath.Join(dir, project.SWDFile(species))
	fields, err := readHeader(samples)
	if err != nil {
		return err
	}
	var cat []string
	for _, v := range maxent.Categorical {
		if slices.Contains(fields, v) {
			cat = append(cat, v)
		}
	}

	out := filepath.Join(dir, project.OutputDir)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	projs, err := maxent.ProjectionDirs(dir)
	if err != nil {
		return err
	}

	o := maxent.Options{
		Jar:         absPath(jar),
		Memory:      memory,
		Samples:     absPath(samples),
		Output:      absPath(out),
		Threads:     threads,
		Autorun:     autorun,
		Categorical: cat,
	}
	for _, d := range projs {
		o.Projections = append(o.Projections, absPath(d))
	}
	b := maxent.NewBatch(o)

	name := filepath.Join(dir, project.BatchFile)
	if err := writeBatch(name, b); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d variables, %d projections\n", name, len(fields), len(projs))
	return nil
}

func absPath(name string) string {
	if a, err := filepath.Abs(name); err == nil {
		return a
	}
	return name
}

func readHeader(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields, err := swd.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return fields, nil
}

func writeBatch(name string, b *maxent.Batch) (err error) {
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

	if err := b.Write(f); err != nil {
		return fmt.Errorf("when writing %q: %v", name, err)
	}
	return nil
}
