// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/catchment"
	"github.com/js-arias/habuplift/project"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a habuplift project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Species) != "" {
		t, err := p.Species()
		if err != nil {
			return err
		}
		printSpecies(c.Stdout(), p.Path(project.Species), t)
	}

	if p.Path(project.EnvVars) != "" {
		t, err := p.EnvVars()
		if err != nil {
			return err
		}
		printEnvVars(c.Stdout(), p.Path(project.EnvVars), t)
	}

	if p.Path(project.HUC12) != "" {
		lk, err := p.HUC12()
		if err != nil {
			return err
		}
		units := make(map[string]bool)
		for _, h := range lk {
			units[h] = true
		}
		fmt.Fprintf(c.Stdout(), "HUC12 lookup:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(project.HUC12))
		fmt.Fprintf(c.Stdout(), "\tcatchments: %d\n", len(lk))
		fmt.Fprintf(c.Stdout(), "\tHUC12 units: %d\n", len(units))
		fmt.Fprintf(c.Stdout(), "\n")
	}

	if name := p.Path(project.MaxEnt); name != "" {
		fmt.Fprintf(c.Stdout(), "MaxEnt:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", name)
		if _, err := os.Stat(name); err != nil {
			fmt.Fprintf(c.Stdout(), "\tWARNING: %v\n", err)
		}
		fmt.Fprintf(c.Stdout(), "\n")
	}

	if dir := p.Path(project.Stats); dir != "" {
		if err := printStats(c.Stdout(), dir); err != nil {
			return err
		}
	}

	return nil
}

func printSpecies(w io.Writer, name string, t *catchment.Table) {
	fmt.Fprintf(w, "Species table:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tcatchments: %d\n", t.Len())

	var spp []string
	for _, f := range t.Fields() {
		if !strings.Contains(f, "_") {
			continue
		}
		spp = append(spp, f)
	}
	fmt.Fprintf(w, "\tspecies: %d\n", len(spp))
	fmt.Fprintf(w, "\n")
}

func printEnvVars(w io.Writer, name string, t *catchment.Table) {
	fmt.Fprintf(w, "Environment variables:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tcatchments: %d\n", t.Len())
	fmt.Fprintf(w, "\tvariables: %d\n", len(t.Fields()))
	if sk := t.Skipped(); len(sk) > 0 {
		fmt.Fprintf(w, "\tnon numeric fields: %s\n", strings.Join(sk, ", "))
	}
	if nd := t.WithNoData(); len(nd) > 0 {
		fmt.Fprintf(w, "\tvariables with missing values: %d\n", len(nd))
	}
	fmt.Fprintf(w, "\n")
}

func printStats(w io.Writer, dir string) error {
	fmt.Fprintf(w, "Stats folder:\n")
	fmt.Fprintf(w, "\tfolder: %s\n", dir)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "\tWARNING: folder not found\n\n")
		return nil
	}
	if err != nil {
		return err
	}
	var spp []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		spp = append(spp, e.Name())
	}
	slices.Sort(spp)
	fmt.Fprintf(w, "\tspecies: %d\n", len(spp))
	for _, sp := range spp {
		fmt.Fprintf(w, "\t\t%s\n", sp)
	}
	fmt.Fprintf(w, "\n")
	return nil
}
