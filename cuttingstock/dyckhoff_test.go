// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cuttingstock

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/voidbert/IO/lpmodel"

	log "github.com/golang/glog"
)

func ExampleBuildDyckhoff() {
	lp, err := BuildDyckhoff(Containers{6: 3}, Items{2: 3, 4: 1})
	if err != nil {
		log.Fatalf("BuildDyckhoff() returned with error %v", err)
	}
	fmt.Print(lp)
	// Output:
	// /* Minimize total container length */
	// min: 6 m6;
	//
	// /* Containers used of each length */
	// m6: m6 + -1 y6_2 >= 0;
	//
	// /* Balance of pieces of each length */
	// l2: y6_2 + 2 y4_2 >= 3;
	// l4: y6_2 + -1 y4_2 >= 1;
	//
	// /* Container upper bounds */
	// c6: y6_2 <= 3;
	//
	// int y6_2, y4_2;
}

func TestNewCutVar(t *testing.T) {
	items := Items{2: 1, 4: 1, 5: 1}
	testCases := []struct {
		l, k float64
		want OneCutVar
	}{
		// 9 is not an item, 2 is.
		{l: 11, k: 9, want: OneCutVar{CutVar, 11, 2}},
		{l: 11, k: 2, want: OneCutVar{CutVar, 11, 2}},
		// Both items: the smaller one is kept.
		{l: 6, k: 4, want: OneCutVar{CutVar, 6, 2}},
		{l: 9, k: 5, want: OneCutVar{CutVar, 9, 4}},
		{l: 4, k: 2, want: OneCutVar{CutVar, 4, 2}},
		// Neither is an item.
		{l: 10, k: 7, want: OneCutVar{CutVar, 10, 3}},
	}
	for _, test := range testCases {
		if got := NewCutVar(test.l, test.k, items); got != test.want {
			t.Errorf("NewCutVar(%v, %v) = %v, want %v", test.l, test.k, got.Name(), test.want.Name())
		}
	}
}

func TestOneCutVar(t *testing.T) {
	if got, want := NewUsageVar(11).Name(), "m11"; got != want {
		t.Errorf("NewUsageVar(11).Name() = %q, want %q", got, want)
	}
	if got, want := NewCutVar(10.5, 2.5, Items{2.5: 1}).Name(), "y10.5_2.5"; got != want {
		t.Errorf("NewCutVar(10.5, 2.5).Name() = %q, want %q", got, want)
	}

	vars := []OneCutVar{
		NewUsageVar(11),
		NewUsageVar(7),
		{CutVar, 11, 5},
		{CutVar, 11, 2},
		{CutVar, 9, 4},
	}
	for i := 1; i < len(vars); i++ {
		if c := vars[i-1].Compare(vars[i]); c >= 0 {
			t.Errorf("%s.Compare(%s) = %v, want < 0", vars[i-1].Name(), vars[i].Name(), c)
		}
	}
}

func TestResiduals(t *testing.T) {
	got := Residuals(exampleContainers, exampleItems)
	want := map[float64]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Residuals() returned with unexpected diff (-want+got);\n%s", diff)
	}

	// Cutting any item from a container or residual leaves a residual or waste.
	smallest := exampleItems.Smallest()
	stock := Residuals(exampleContainers, exampleItems)
	for l := range exampleContainers {
		stock[l] = true
	}
	for l := range stock {
		for k := range exampleItems {
			if rest := subtractLength(l, k); k < l && rest >= smallest && !got[rest] {
				t.Errorf("Residuals() is missing %v, left by cutting %v from %v", rest, k, l)
			}
		}
	}
}

func TestResiduals_FractionalLengths(t *testing.T) {
	got := Residuals(Containers{10.1: 1}, Items{2.3: 1})
	for _, l := range []float64{7.8, 5.5, 3.2} {
		if !got[l] {
			t.Errorf("Residuals() is missing %v: %v", l, got)
		}
	}
}

func TestDyckhoffModel(t *testing.T) {
	m, err := DyckhoffModel(exampleContainers, exampleItems)
	if err != nil {
		t.Fatalf("DyckhoffModel() returned with unexpected error %v", err)
	}

	var headings []string
	labels := make(map[string][]string)
	for _, f := range m.Families {
		headings = append(headings, f.Heading)
		for _, ct := range f.Constraints {
			labels[f.Heading] = append(labels[f.Heading], ct.Label)
		}
	}
	wantHeadings := []string{"Containers used of each length", "Balance of pieces of each length", "Container upper bounds"}
	if diff := cmp.Diff(wantHeadings, headings); diff != "" {
		t.Errorf("family headings returned with unexpected diff (-want+got);\n%s", diff)
	}
	wantLabels := map[string][]string{
		"Containers used of each length":   {"m7", "m10", "m11"},
		"Balance of pieces of each length": {"l2", "l3", "l4", "l5", "l6", "l8", "l9"},
		"Container upper bounds":           {"c7", "c10"},
	}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Errorf("constraint labels returned with unexpected diff (-want+got);\n%s", diff)
	}

	byLabel := constraintsByLabel(m)
	for _, test := range []struct {
		label string
		want  lpmodel.ClosedInterval
	}{
		{"m7", lpmodel.AtLeast(0)},
		{"l2", lpmodel.AtLeast(13)},
		{"l3", lpmodel.AtLeast(0)},
		{"l4", lpmodel.AtLeast(9)},
		{"l5", lpmodel.AtLeast(5)},
		{"c7", lpmodel.AtMost(5)},
	} {
		if got := byLabel[test.label].Bounds; got != test.want {
			t.Errorf("%s bounds = %v, want %v", test.label, got, test.want)
		}
	}

	// 7 is a container and a residual: the pieces of length 7 left by other cuts are not
	// counted as containers used.
	wantUsage7 := lpmodel.NewLinearExpr[OneCutVar]().
		Add(NewUsageVar(7)).
		Add(OneCutVar{CutVar, 11, 4}).
		Add(OneCutVar{CutVar, 9, 2}).
		AddTerm(OneCutVar{CutVar, 7, 4}, -1).
		AddTerm(OneCutVar{CutVar, 7, 2}, -1)
	if got, want := byLabel["m7"].Expr.String(), wantUsage7.String(); got != want {
		t.Errorf("m7 = %q, want %q", got, want)
	}

	if got, want := m.Objective.Expr.String(), "11 m11 + 10 m10 + 7 m7"; got != want {
		t.Errorf("objective = %q, want %q", got, want)
	}
	for _, v := range m.Integers {
		if v.Kind != CutVar {
			t.Errorf("Integers contains usage variable %s", v.Name())
		}
	}
}

func TestDyckhoffModel_CutsAreCanonical(t *testing.T) {
	m, err := DyckhoffModel(exampleContainers, exampleItems)
	if err != nil {
		t.Fatalf("DyckhoffModel() returned with unexpected error %v", err)
	}
	for _, v := range m.Integers {
		if canonical := NewCutVar(v.Length, v.Cut, exampleItems); canonical != v {
			t.Errorf("variable %s is also written %s", v.Name(), canonical.Name())
		}
		if _, ok := exampleItems[v.Cut]; !ok {
			t.Errorf("variable %s does not cut an item", v.Name())
		}
	}

	lp, err := lpmodel.ExportModelAsLpFormat(m)
	if err != nil {
		t.Fatalf("ExportModelAsLpFormat() returned with unexpected error %v", err)
	}
	for _, name := range []string{"y11_9 ", "y10_8 ", "y6_4 ", "y9_5 "} {
		if strings.Contains(lp, name) {
			t.Errorf("ExportModelAsLpFormat() contains non-canonical variable %s:\n%s", name, lp)
		}
	}
}

func TestBuildDyckhoff_InvalidProblem(t *testing.T) {
	if _, err := BuildDyckhoff(Containers{}, Items{2: 1}); !errors.Is(err, ErrInvalidProblem) {
		t.Errorf("BuildDyckhoff() returned with error %v, want ErrInvalidProblem", err)
	}
}
