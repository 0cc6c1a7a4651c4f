// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Species, "EndriesSpecies.csv"},
		{project.EnvVars, "ResponseVars.csv"},
		{project.HUC12, "gridcode-huc12.csv"},
		{project.MaxEnt, "tools/maxent.jar"},
		{project.Stats, "SpeciesStats"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.MaxEnt, ""); prev != "tools/maxent.jar" {
		t.Errorf("add: got previous %q, want %q", prev, "tools/maxent.jar")
	}
	if path := np.Path(project.MaxEnt); path != "" {
		t.Errorf("add: empty path must remove dataset, got %q", path)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestParseDataset(t *testing.T) {
	for _, d := range project.Datasets() {
		got, err := project.ParseDataset(" " + strings.ToUpper(string(d)) + " ")
		if err != nil {
			t.Errorf("parse %q: %v", d, err)
			continue
		}
		if got != d {
			t.Errorf("parse: got %q, want %q", got, d)
		}
	}
	if _, err := project.ParseDataset("trees"); err == nil {
		t.Errorf("parse: expecting error on unknown dataset")
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"no path field":    "dataset\tfile\nspecies\tspp.csv\n",
		"no dataset field": "set\tpath\nspecies\tspp.csv\n",
		"unknown dataset":  "dataset\tpath\ntrees\ttree.tab\n",
		"repeated dataset": "dataset\tpath\nspecies\tspp.csv\nSpecies\tother.csv\n",
		"missing path":     "dataset\tpath\nspecies\n",
	}
	dir := t.TempDir()
	for name, data := range tests {
		f := filepath.Join(dir, strings.ReplaceAll(name, " ", "-")+".tab")
		if err := os.WriteFile(f, []byte(data), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := project.Read(f); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}

	p := project.New()
	if err := p.Write(); err == nil {
		t.Errorf("write: expecting error on undefined file name")
	}
}

func TestDatasets(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "envvars.csv")
	data := "GRIDCODE,REACHCODE,V0001E\n1001,03050102000123,0.53\n"
	if err := os.WriteFile(env, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lk := filepath.Join(dir, "huc12.csv")
	if err := os.WriteFile(lk, []byte("GRIDCODE,HUC_12\n1001,030501020101\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p := project.New()
	p.SetName("test-project.tab")

	if _, err := p.EnvVars(); err == nil {
		t.Errorf("envvars: expecting error on undefined dataset")
	}
	if _, err := p.SpeciesDir("Notropis_alborus", false); err == nil {
		t.Errorf("species dir: expecting error on undefined stats folder")
	}

	p.Add(project.EnvVars, env)
	p.Add(project.HUC12, lk)
	p.Add(project.Stats, filepath.Join(dir, "stats"))

	tab, err := p.EnvVars()
	if err != nil {
		t.Fatalf("envvars: %v", err)
	}
	if v, _ := tab.Value(1001, "V0001E"); v != 0.53 {
		t.Errorf("envvars: got %v, want %v", v, 0.53)
	}
	h, err := p.HUC12()
	if err != nil {
		t.Fatalf("huc12: %v", err)
	}
	if h[1001] != "030501020101" {
		t.Errorf("huc12: got %q", h[1001])
	}

	if _, err := p.SpeciesDir("Notropis_alborus", false); err == nil {
		t.Errorf("species dir: expecting error on missing folder")
	}
	sp, err := p.SpeciesDir("Notropis_alborus", true)
	if err != nil {
		t.Fatalf("species dir: %v", err)
	}
	if sp != filepath.Join(dir, "stats", "Notropis_alborus") {
		t.Errorf("species dir: got %q", sp)
	}
	if _, err := p.SpeciesDir("Notropis_alborus", false); err != nil {
		t.Errorf("species dir: %v", err)
	}

	if got := project.SWDFile("Notropis_alborus"); got != "Notropis_alborus_SWD.csv" {
		t.Errorf("swd file: got %q", got)
	}
	if got := project.ScenarioBatch("BF"); got != "BF_RunMaxent.bat" {
		t.Errorf("scenario batch: got %q", got)
	}
	if err := project.CheckFile(filepath.Join(sp, project.DataFile)); err == nil {
		t.Errorf("check file: expecting error on missing file")
	}
}
