// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package varlist_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/habuplift/varlist"
)

func TestReadWrite(t *testing.T) {
	vars := []string{"V0001E", "StreamOrde", "AnimalOps"}

	var w bytes.Buffer
	if err := varlist.Write(&w, vars); err != nil {
		t.Fatalf("unable to write list: %v", err)
	}

	got, err := varlist.Read(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read list: %v", err)
	}
	if !reflect.DeepEqual(got, vars) {
		t.Errorf("list: got %v, want %v", got, vars)
	}

	in := "# included variables\n\"V0001E\", -0.21\n\nStreamOrde\n"
	got, err = varlist.Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read list: %v", err)
	}
	if want := vars[:2]; !reflect.DeepEqual(got, want) {
		t.Errorf("list: got %v, want %v", got, want)
	}

	if _, err := varlist.Read(strings.NewReader("A\nB\nA\n")); err == nil {
		t.Errorf("expecting error on repeated variable")
	}
}

func TestExclude(t *testing.T) {
	vars := []string{"V0001E", "StreamOrde", "AnimalOps", "FCODE"}
	got := varlist.Exclude(vars, varlist.Split("AnimalOps; FCODE,unknown"))
	if want := []string{"V0001E", "StreamOrde"}; !reflect.DeepEqual(got, want) {
		t.Errorf("exclude: got %v, want %v", got, want)
	}
}
