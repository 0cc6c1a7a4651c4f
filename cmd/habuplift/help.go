// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(projectsGuide)
	app.Add(scenarioGuide)
	app.Add(workflowGuide)
}

var projectsGuide = &command.Command{
	Usage: "project-files",
	Short: "about project files",
	Long: `
Habuplift requires several tables to build the habitat models. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using habuplift commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# habuplift project files
	dataset	path
	envvars	ResponseVars.csv
	huc12	gridcode-huc12.csv
	maxent	tools/maxent.jar
	species	EndriesSpecies.csv
	stats	SpeciesStats

The valid file types are:

- Species table. Defined by the dataset keyword "species". A CSV file with a
  row for each surveyed catchment, with the fields GRIDCODE (the catchment
  ID), REACHCODE (the NHD reach code of the catchment) and a field for each
  species, named as <genus>_<species>, with 1 for the catchments in which the
  species was observed.
- Environment variables. Defined by the dataset keyword "envvars". A CSV file
  with a row for each catchment, with the fields GRIDCODE, REACHCODE and a
  field for each environment variable. Values of -9998 and -9999, as well as
  empty cells, are taken as missing values.
- HUC12 lookup. Defined by the dataset keyword "huc12". A CSV file with the
  fields GRIDCODE and HUC_12 that assigns each catchment to a HUC12
  watershed.
- MaxEnt. Defined by the dataset keyword "maxent". The path of the maxent.jar
  file.
- Stats folder. Defined by the dataset keyword "stats". The root folder of
  the species outputs. Each species is stored in a sub-folder named after the
  species.

The recommended way to add a file to a project is by using the command
'habuplift data add'.
	`,
}

var scenarioGuide = &command.Command{
	Usage: "scenario-files",
	Short: "about scenario files",
	Long: `
A scenario is a set of changes on the environment variables of the catchments,
for example, reducing the number of animal operations, or the stream
velocity. Scenarios are defined using HCL files
<https://github.com/hashicorp/hcl>.

A scenario file has the following attributes and blocks:

	name    the name of the scenario. It is used as the prefix of the
	        scenario outputs. Required.
	huc     a list of hydrologic unit codes. Only the catchments with a
	        reach code that starts with one of these codes will be used in
	        the scenario. Optional.
	change  a block for each modified field, with the field name as
	        label. The value attribute is the new value of the field, and
	        the optional where attribute is a condition: only the
	        catchments in which the condition is true will be modified.

Here is an example file:

	name = "NR"
	huc  = ["030501"]

	change "AnimalOps" {
	  where = AnimalOps > 0
	  value = AnimalOps - 1
	}

	change "V0001E" {
	  value = V0001E * 0.9
	}

Expressions can use any numeric field of the catchment, as well as GRIDCODE
and REACHCODE, and the functions min, max, abs, floor and ceil. The changes are
applied in the order of the file, so a change sees the values modified by
previous changes. If an expression uses a missing value, the catchment is
left unchanged.
	`,
}

var workflowGuide = &command.Command{
	Usage: "workflow",
	Short: "about the modeling workflow",
	Long: `
The usual workflow to model the habitat of a species, and the uplift of a
scenario, is as follows:

	habuplift data build <project> <species>
		Builds the data file of the species.
	habuplift vars sh <project> <species>
		Screens the variables correlated with the species presence.
	habuplift vars cross <project> <species>
		Finds the pairs of highly correlated variables.
	habuplift vars redundant <project> <species>
		Removes the redundant variables.
	habuplift maxent swd <project> <species>
		Writes the MaxEnt samples file.
	habuplift maxent batch <project> <species>
		Writes the MaxEnt batch file.
	habuplift maxent run <project> <species>
		Runs MaxEnt.
	habuplift maxent predict <project> <species>
		Classifies the MaxEnt predictions.

To model a scenario:

	habuplift maxent project --name XX --huc <huc> <project> <species>
		Writes the projection layers under current conditions.
	habuplift maxent project --scenario <file> <project> <species>
		Writes the projection layers of the scenario.
	habuplift maxent run --scenario <name> <project> <species>
		Runs MaxEnt with the scenario projection.
	habuplift uplift calc --scenario <name> <project> <species>
		Calculates the uplift of the species.
	habuplift uplift merge --scenario <name> <project>
		Merges the uplift of all species.
	habuplift uplift summary <uplift-file>
		Adds summary fields to a merged uplift file.
	habuplift uplift plot --field <name>_avgUplift <uplift-file>
		Draws a chart of the uplift deciles.

Scenario changes can be checked before the projection with
'habuplift uplift scenario', and values aggregated into HUC12 units with
'habuplift data aggregate'.
	`,
}
