// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to draw
// a bar chart of the uplift deciles.
package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/chart"
	"github.com/js-arias/habuplift/decile"
	"github.com/js-arias/habuplift/uplift"
)

var Command = &command.Command{
	Usage: `plot --field <name> [--decile <name>]
	[--color <scale> | --key <file>] [--title <text>]
	[-o|--output <file>] <uplift-file>`,
	Short: "draw a chart of uplift deciles",
	Long: `
Command plot reads an uplift table and draws a bar chart with the mean value of
a field in each decile.

The argument of the command is the uplift table.

The flag --field is required and defines the field to be drawn (for example
"BF_avgUplift"). By default, the deciles are calculated from the values of the
field. Use the flag --decile to read the deciles from a field of the table
(for example "BF_decile").

By default, the bars are colored with an iridescent scale. Use the flag
--color to define a different scale. Valid scales are:

	gray         gray scale
	incandescent incandescent scale
	iridescent   iridescent scale (default)
	rainbow      rainbow scale (from purple to red)

Use the flag --key to define the color of each decile with a key file. A key
file is a tab-delimited file with the columns "decile" (from 1 to 10) and
"color" (an RGB value separated by commas, for example "125,132,148"). A
decile without a color in the key will be transparent.

The flag --title sets the title of the chart.

By default, the chart is saved as a PNG image, with the name of the input file
and the suffix "-deciles". Use the flag --output, or -o, to define a different
file name. The image format is defined by the file extension (for example
".svg" or ".pdf").

The mean value and the number of catchments of each decile are printed on the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var fieldFlag string
var decileFlag string
var colorFlag string
var keyFlag string
var titleFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&fieldFlag, "field", "", "")
	c.Flags().StringVar(&decileFlag, "decile", "", "")
	c.Flags().StringVar(&colorFlag, "color", "iridescent", "")
	c.Flags().StringVar(&keyFlag, "key", "", "")
	c.Flags().StringVar(&titleFlag, "title", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting uplift file")
	}
	if fieldFlag == "" {
		return c.UsageError("flag --field undefined")
	}
	var g chart.Gradienter
	if keyFlag != "" {
		k, err := readKey(keyFlag)
		if err != nil {
			return err
		}
		g = k
	} else {
		s, err := chart.Scale(colorFlag)
		if err != nil {
			return c.UsageError(fmt.Sprintf("flag --color: %v", err))
		}
		g = s
	}

	name := args[0]
	t, err := readTable(name)
	if err != nil {
		return err
	}
	values, err := t.Column(fieldFlag)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	var dec []int
	if decileFlag != "" {
		col, err := t.Column(decileFlag)
		if err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
		dec = make([]int, len(col))
		for i, v := range col {
			if !math.IsNaN(v) {
				dec[i] = int(v)
			}
		}
	} else {
		dec = decile.Assign(values)
	}

	means, counts := chart.DecileMeans(values, dec)
	for i, m := range means {
		fmt.Fprintf(c.Stdout(), "%d\t%.6f\t%d\n", i+1, m, counts[i])
	}

	p, err := chart.Deciles(means, g, titleFlag, fieldFlag)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(name, filepath.Ext(name)) + "-deciles.png"
	}
	if err := chart.Save(p, output); err != nil {
		return fmt.Errorf("when writing %q: %v", output, err)
	}
	return nil
}

func readTable(name string) (*uplift.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := uplift.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

func readKey(name string) (*chart.Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := chart.ReadKey(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return k, nil
}
