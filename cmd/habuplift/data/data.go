// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package data is a metapackage for commands
// that dealt with catchment data tables.
package data

import (
	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/cmd/habuplift/data/add"
	"github.com/js-arias/habuplift/cmd/habuplift/data/aggregate"
	"github.com/js-arias/habuplift/cmd/habuplift/data/build"
	"github.com/js-arias/habuplift/cmd/habuplift/data/update"
)

var Command = &command.Command{
	Usage: "data <command> [<argument>...]",
	Short: "commands for catchment data tables",
}

func init() {
	Command.Add(add.Command)
	Command.Add(aggregate.Command)
	Command.Add(build.Command)
	Command.Add(update.Command)
}
