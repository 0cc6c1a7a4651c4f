// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package vars is a metapackage for commands
// that select the environment variables
// used to model a species.
package vars

import (
	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/cmd/habuplift/vars/cross"
	"github.com/js-arias/habuplift/cmd/habuplift/vars/edit"
	"github.com/js-arias/habuplift/cmd/habuplift/vars/redundant"
	"github.com/js-arias/habuplift/cmd/habuplift/vars/sh"
)

var Command = &command.Command{
	Usage: "vars <command> [<argument>...]",
	Short: "commands for environment variable selection",
}

func init() {
	Command.Add(cross.Command)
	Command.Add(edit.Command)
	Command.Add(redundant.Command)
	Command.Add(sh.Command)
}
