// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package maxent implements the files used
// to communicate with MaxEnt,
// the maximum entropy species distribution modeling tool.
//
// MaxEnt is a Java program
// controlled by a command line
// made of key=value parameters.
// This package builds and runs that command,
// writes the projection layers,
// and reads back the model results and predictions.
package maxent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Default values for a MaxEnt run.
const (
	Java    = "java"
	Memory  = "-mx2048m"
	Threads = 16
)

// Categorical are the environment variables
// that are set as categorical layers
// when present in a samples file.
var Categorical = []string{"StreamOrde", "FCODE"}

// A Param is a key=value parameter of MaxEnt.
type Param struct {
	Key   string
	Value string
}

// A Batch is a MaxEnt command line.
type Batch struct {
	Java   string
	Memory string
	Jar    string
	Params []Param
}

// Options are the options used to build a MaxEnt command line.
type Options struct {
	// Path of the maxent.jar file
	Jar string

	// Memory flag for the Java virtual machine,
	// by default "-mx2048m".
	Memory string

	// The SWD file,
	// used both as samples and environment layers.
	Samples string

	// Output directory
	Output string

	// Number of threads,
	// by default 16.
	Threads int

	// If true,
	// MaxEnt runs without user interaction.
	Autorun bool

	// Environment variables to be set as categorical.
	Categorical []string

	// Directories with projection layers.
	Projections []string
}

// NewBatch returns a MaxEnt command line.
//
// Response curves, pictures, plots and jackknifing are disabled,
// output files are overwritten without asking,
// and the background samples are excluded as a species.
func NewBatch(o Options) *Batch {
	if o.Memory == "" {
		o.Memory = Memory
	}
	if o.Threads <= 0 {
		o.Threads = Threads
	}

	b := &Batch{
		Java:   Java,
		Memory: o.Memory,
		Jar:    o.Jar,
	}
	b.Add("samplesfile", o.Samples)
	b.Add("environmentallayers", o.Samples)
	b.Add("outputdirectory", o.Output)
	b.Add("responsecurves", "false")
	b.Add("pictures", "false")
	b.Add("plots", "false")
	b.Add("jackknife", "false")
	b.Add("askoverwrite", "false")
	b.Add("nodata", "-9999")
	b.Add("threads", strconv.Itoa(o.Threads))
	b.Add("autorun", strconv.FormatBool(o.Autorun))
	b.Add("togglespeciesselected", "background")
	for _, c := range o.Categorical {
		b.Add("togglelayertype", c)
	}
	if len(o.Projections) > 0 {
		b.Add("projectionlayers", strings.Join(o.Projections, ","))
	}
	return b
}

// Add appends a parameter.
func (b *Batch) Add(key, value string) {
	b.Params = append(b.Params, Param{Key: key, Value: value})
}

// Get returns the value of the first parameter
// with the given key.
func (b *Batch) Get(key string) (string, bool) {
	for _, p := range b.Params {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Set sets the value of a parameter.
// If the parameter is not defined,
// it is appended.
func (b *Batch) Set(key, value string) {
	for i, p := range b.Params {
		if strings.EqualFold(p.Key, key) {
			b.Params[i].Value = value
			return
		}
	}
	b.Add(key, value)
}

// Args returns the arguments for the Java program.
func (b *Batch) Args() []string {
	var args []string
	if b.Memory != "" {
		args = append(args, b.Memory)
	}
	args = append(args, "-jar", b.Jar)
	for _, p := range b.Params {
		args = append(args, p.Key+"="+p.Value)
	}
	return args
}

// String returns the command line.
func (b *Batch) String() string {
	tokens := []string{quote(b.Java)}
	for _, a := range b.Args() {
		tokens = append(tokens, quote(a))
	}
	return strings.Join(tokens, " ")
}

func quote(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	return `"` + s + `"`
}

// Write writes the command line
// as a batch file.
func (b *Batch) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n", b.String())
	return err
}

// ParseBatch parses a MaxEnt command line.
func ParseBatch(line string) (*Batch, error) {
	tokens, err := split(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New("empty command line")
	}

	b := &Batch{Java: tokens[0]}
	for i := 1; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t == "-jar":
			if i+1 >= len(tokens) {
				return nil, errors.New("expecting jar file after -jar")
			}
			i++
			b.Jar = tokens[i]
		case strings.HasPrefix(t, "-"):
			b.Memory = t
		default:
			k, v, ok := strings.Cut(t, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter %q", t)
			}
			b.Add(k, v)
		}
	}
	if b.Jar == "" {
		return nil, errors.New("jar file undefined")
	}
	return b, nil
}

func split(line string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	inToken := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inToken = true
		case (r == ' ' || r == '\t' || r == '\r' || r == '\n') && !inQuote:
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inQuote {
		return nil, errors.New("unbalanced quotes")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// ReadBatch reads a batch file
// with a MaxEnt command line.
// Empty lines,
// and comment lines,
// are ignored.
func ReadBatch(r io.Reader) (*Batch, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(strings.ToUpper(line), "REM ") || strings.HasPrefix(line, "@") {
			continue
		}
		return ParseBatch(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("command line not found")
}

// Run executes a MaxEnt command line.
// The process is killed if the context is canceled.
func Run(ctx context.Context, b *Batch, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, b.Java, b.Args()...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("maxent: %v", err)
	}
	return nil
}
