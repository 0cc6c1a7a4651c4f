// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package uplift is a metapackage for commands
// that calculate habitat uplift
// of management scenarios.
package uplift

import (
	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift/calc"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift/merge"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift/plot"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift/scenario"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift/summary"
)

var Command = &command.Command{
	Usage: "uplift <command> [<argument>...]",
	Short: "commands for habitat uplift",
}

func init() {
	Command.Add(calc.Command)
	Command.Add(merge.Command)
	Command.Add(plot.Command)
	Command.Add(scenario.Command)
	Command.Add(summary.Command)
}
