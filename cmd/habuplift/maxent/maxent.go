// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package maxent is a metapackage for commands
// that prepare and read MaxEnt runs.
package maxent

import (
	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/batch"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/predict"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/project"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/results"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/run"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent/swd"
)

var Command = &command.Command{
	Usage: "maxent <command> [<argument>...]",
	Short: "commands for MaxEnt runs",
}

func init() {
	Command.Add(batch.Command)
	Command.Add(predict.Command)
	Command.Add(project.Command)
	Command.Add(results.Command)
	Command.Add(run.Command)
	Command.Add(swd.Command)
}
