// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Habuplift is a tool for habitat suitability modeling
// of freshwater species,
// and the habitat uplift of land-management scenarios.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/habuplift/cmd/habuplift/data"
	"github.com/js-arias/habuplift/cmd/habuplift/maxent"
	"github.com/js-arias/habuplift/cmd/habuplift/prj"
	"github.com/js-arias/habuplift/cmd/habuplift/uplift"
	"github.com/js-arias/habuplift/cmd/habuplift/vars"
)

var app = &command.Command{
	Usage: "habuplift <command> [<argument>...]",
	Short: "a tool for habitat suitability and uplift modeling",
}

func init() {
	app.Add(data.Command)
	app.Add(maxent.Command)
	app.Add(prj.Command)
	app.Add(uplift.Command)
	app.Add(vars.Command)
}

func main() {
	app.Main()
}
