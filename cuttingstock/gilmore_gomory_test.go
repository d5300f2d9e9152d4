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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/voidbert/IO/lpmodel"

	log "github.com/golang/glog"
)

var (
	exampleContainers = Containers{11: Unbounded, 10: 5, 7: 5}
	exampleItems      = Items{2: 13, 4: 9, 5: 5}
)

func ExampleBuildGilmoreGomory() {
	lp, err := BuildGilmoreGomory(Containers{5: 2}, Items{2: 3, 3: 1})
	if err != nil {
		log.Fatalf("BuildGilmoreGomory() returned with error %v", err)
	}
	fmt.Print(lp)
	// Output:
	// /* Minimize total container length */
	// min: 5 c5_1 + 5 c5_2;
	//
	// /*
	//   Cutting patterns for containers of length 5:
	//     1: 3 + 2
	//     2: 2 + 2
	// */
	//
	// /* Minimum production of each item type */
	// i2: c5_1 + 2 c5_2 >= 3;
	// i3: c5_1 >= 1;
	//
	// /* Container upper bounds */
	// c5: c5_1 + c5_2 <= 2;
	//
	// int c5_1, c5_2;
}

func TestCuttingPatterns(t *testing.T) {
	testCases := []struct {
		length float64
		want   []Pattern
	}{
		{
			length: 7,
			want:   []Pattern{{5, 2}, {4, 2}, {2, 2, 2}},
		},
		{
			length: 10,
			want:   []Pattern{{5, 5}, {5, 4}, {5, 2, 2}, {4, 4, 2}, {4, 2, 2, 2}, {2, 2, 2, 2, 2}},
		},
		{
			length: 11,
			want:   []Pattern{{5, 5}, {5, 4, 2}, {5, 2, 2, 2}, {4, 4, 2}, {4, 2, 2, 2}, {2, 2, 2, 2, 2}},
		},
		{
			length: 1,
			want:   nil,
		},
	}
	for _, test := range testCases {
		t.Run(fmt.Sprint(test.length), func(t *testing.T) {
			got := CuttingPatterns(exampleItems, test.length)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("CuttingPatterns(%v) returned with unexpected diff (-want+got);\n%s", test.length, diff)
			}
		})
	}
}

func TestCuttingPatterns_AreMaximal(t *testing.T) {
	items := Items{2.5: 1, 3: 1, 7.25: 1}
	smallest := items.Smallest()
	for _, length := range []float64{3, 9.75, 12, 20.5} {
		patterns := CuttingPatterns(items, length)
		if len(patterns) == 0 {
			t.Errorf("CuttingPatterns(%v) returned no pattern", length)
		}
		seen := make(map[string]bool)
		for _, p := range patterns {
			if p.Length() > length {
				t.Errorf("CuttingPatterns(%v) pattern %v is longer than the container", length, p)
			}
			if waste := subtractLength(length, p.Length()); waste >= smallest {
				t.Errorf("CuttingPatterns(%v) pattern %v wastes %v, fitting another item", length, p, waste)
			}
			for i := 1; i < len(p); i++ {
				if p[i] > p[i-1] {
					t.Errorf("CuttingPatterns(%v) pattern %v is not in non-increasing order", length, p)
				}
			}
			if seen[p.String()] {
				t.Errorf("CuttingPatterns(%v) returned pattern %v twice", length, p)
			}
			seen[p.String()] = true
		}
	}
}

func TestPattern(t *testing.T) {
	p := Pattern{5, 4, 2, 2}
	if got, want := p.Count(2), 2; got != want {
		t.Errorf("Count(2) = %v, want %v", got, want)
	}
	if got, want := p.Count(3), 0; got != want {
		t.Errorf("Count(3) = %v, want %v", got, want)
	}
	if got, want := p.Length(), 13.0; got != want {
		t.Errorf("Length() = %v, want %v", got, want)
	}
	if got, want := p.String(), "5 + 4 + 2 + 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPatternVar(t *testing.T) {
	testCases := []struct {
		v    PatternVar
		want string
	}{
		{PatternVar{10, 0}, "c10_1"},
		{PatternVar{10, 5}, "c10_6"},
		{PatternVar{12.5, 1}, "c12.5_2"},
		{PatternVar{7, NoPattern}, "c7"},
	}
	for _, test := range testCases {
		if got := test.v.Name(); got != test.want {
			t.Errorf("%#v.Name() = %q, want %q", test.v, got, test.want)
		}
	}

	if c := (PatternVar{7, 2}).Compare(PatternVar{10, 0}); c >= 0 {
		t.Errorf("Compare() = %v, want c7_3 before c10_1", c)
	}
	if c := (PatternVar{10, 1}).Compare(PatternVar{10, 0}); c <= 0 {
		t.Errorf("Compare() = %v, want c10_1 before c10_2", c)
	}
}

func constraintsByLabel[V lpmodel.Variable[V]](m *lpmodel.Model[V]) map[string]lpmodel.Constraint[V] {
	byLabel := make(map[string]lpmodel.Constraint[V])
	for _, f := range m.Families {
		for _, ct := range f.Constraints {
			byLabel[ct.Label] = ct
		}
	}
	return byLabel
}

func TestGilmoreGomoryModel(t *testing.T) {
	m, err := GilmoreGomoryModel(exampleContainers, exampleItems)
	if err != nil {
		t.Fatalf("GilmoreGomoryModel() returned with unexpected error %v", err)
	}

	if got, want := m.Objective.Expr.Len(), 15; got != want {
		t.Errorf("objective has %v terms, want %v", got, want)
	}
	if got, want := m.Objective.Expr.Coefficient(PatternVar{11, 0}), 11.0; got != want {
		t.Errorf("objective coefficient of c11_1 = %v, want %v", got, want)
	}
	if diff := cmp.Diff(m.Objective.Expr.Variables(), m.Integers); diff != "" {
		t.Errorf("Integers returned with unexpected diff (-want+got);\n%s", diff)
	}

	var labels []string
	for _, f := range m.Families {
		for _, ct := range f.Constraints {
			labels = append(labels, ct.Label)
		}
	}
	if diff := cmp.Diff([]string{"i2", "i4", "i5", "c7", "c10"}, labels); diff != "" {
		t.Errorf("constraint labels returned with unexpected diff (-want+got);\n%s", diff)
	}

	byLabel := constraintsByLabel(m)
	for item, demand := range exampleItems {
		ct := byLabel["i"+lpmodel.FormatNumber(item)]
		if got, want := ct.Bounds, lpmodel.AtLeast(demand); got != want {
			t.Errorf("%s bounds = %v, want %v", ct.Label, got, want)
		}
	}
	// c10_5 is 4 + 2 + 2 + 2.
	if got, want := byLabel["i2"].Expr.Coefficient(PatternVar{10, 4}), 3.0; got != want {
		t.Errorf("i2 coefficient of c10_5 = %v, want %v", got, want)
	}
	if got, want := byLabel["c10"].Expr.Len(), 6; got != want {
		t.Errorf("c10 has %v terms, want %v", got, want)
	}
	if got, want := byLabel["c7"].Bounds, lpmodel.AtMost(5); got != want {
		t.Errorf("c7 bounds = %v, want %v", got, want)
	}
}

func TestGilmoreGomoryModel_ContainerWithoutPatterns(t *testing.T) {
	m, err := GilmoreGomoryModel(Containers{1: 4, 5: 2}, Items{2: 1})
	if err != nil {
		t.Fatalf("GilmoreGomoryModel() returned with unexpected error %v", err)
	}
	byLabel := constraintsByLabel(m)
	if _, ok := byLabel["c1"]; ok {
		t.Errorf("GilmoreGomoryModel() has a bound for container 1, which has no pattern")
	}
	if _, ok := byLabel["c5"]; !ok {
		t.Errorf("GilmoreGomoryModel() has no bound for container 5")
	}
	want := []string{"Cutting patterns for containers of length 1:\n  none, no item fits\n\n" +
		"Cutting patterns for containers of length 5:\n  1: 2 + 2"}
	if diff := cmp.Diff(want, m.Comments); diff != "" {
		t.Errorf("Comments returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestBuildGilmoreGomory_IsDeterministic(t *testing.T) {
	first, err := BuildGilmoreGomory(exampleContainers, exampleItems)
	if err != nil {
		t.Fatalf("BuildGilmoreGomory() returned with unexpected error %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := BuildGilmoreGomory(exampleContainers, exampleItems)
		if err != nil {
			t.Fatalf("BuildGilmoreGomory() returned with unexpected error %v", err)
		}
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("BuildGilmoreGomory() returned with unexpected diff (-want+got);\n%s", diff)
		}
	}
}

func TestBuildGilmoreGomory_InvalidProblem(t *testing.T) {
	if _, err := BuildGilmoreGomory(Containers{10: 1}, Items{}); !errors.Is(err, ErrInvalidProblem) {
		t.Errorf("BuildGilmoreGomory() returned with error %v, want ErrInvalidProblem", err)
	}
}
