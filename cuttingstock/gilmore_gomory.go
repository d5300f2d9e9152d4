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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/voidbert/IO/lpmodel"
)

// NoPattern is the pattern index of a PatternVar that refers to a container as a whole.
const NoPattern = -1

// Pattern is one way of cutting a container into items: the item lengths, in non-increasing
// order. The waste it leaves is smaller than the smallest item.
type Pattern []float64

// Count returns how many items of length `item` the pattern produces.
func (p Pattern) Count(item float64) int {
	n := 0
	for _, l := range p {
		if l == item {
			n++
		}
	}
	return n
}

// Length returns the total length of the items in the pattern.
func (p Pattern) Length() float64 {
	var sum float64
	for _, l := range p {
		sum += l
	}
	return sum
}

// String returns the pattern as a sum, e.g. `5 + 4 + 2`.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, l := range p {
		parts[i] = lpmodel.FormatNumber(l)
	}
	return strings.Join(parts, " + ")
}

// PatternVar is a variable of the Gilmore-Gomory formulation: the number of containers of
// length Container cut with their Pattern-th pattern. With Pattern equal to NoPattern it names
// the container type itself.
type PatternVar struct {
	Container float64
	Pattern   int
}

// Name returns `c<container>_<pattern>` with a 1-based pattern, or `c<container>`.
func (v PatternVar) Name() string {
	if v.Pattern == NoPattern {
		return "c" + lpmodel.FormatNumber(v.Container)
	}
	return fmt.Sprintf("c%s_%d", lpmodel.FormatNumber(v.Container), v.Pattern+1)
}

// Compare orders variables by container length, then by pattern.
func (v PatternVar) Compare(other PatternVar) int {
	if c := cmp.Compare(v.Container, other.Container); c != 0 {
		return c
	}
	return cmp.Compare(v.Pattern, other.Pattern)
}

// CuttingPatterns returns every cutting pattern of a container of the given length. Patterns
// are listed starting with the largest items; a container too short for any item has none.
func CuttingPatterns(items Items, length float64) []Pattern {
	lengths := items.Lengths()
	slices.Reverse(lengths)

	var patterns []Pattern
	for _, p := range cuttingPatterns(lengths, length) {
		if len(p) != 0 {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// cuttingPatterns returns the patterns for `length` using items in decreasing order. Once an
// item is skipped it is never used again, so every multiset is produced once.
func cuttingPatterns(items []float64, length float64) []Pattern {
	var patterns []Pattern
	for i, item := range items {
		if item > length {
			continue
		}
		for _, rest := range cuttingPatterns(items[i:], subtractLength(length, item)) {
			patterns = append(patterns, append(Pattern{item}, rest...))
		}
	}

	if len(patterns) == 0 {
		return []Pattern{{}}
	}
	return patterns
}

func patternsComment(containers []float64, patterns map[float64][]Pattern) string {
	var sb strings.Builder
	for i, l := range containers {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Cutting patterns for containers of length %s:", lpmodel.FormatNumber(l))
		if len(patterns[l]) == 0 {
			sb.WriteString("\n  none, no item fits")
		}
		for j, p := range patterns[l] {
			fmt.Fprintf(&sb, "\n  %d: %v", j+1, p)
		}
	}
	return sb.String()
}

// GilmoreGomoryModel returns the pattern-based model of the cutting stock problem.
//
// The model minimizes the total length of the containers used, with one integer variable per
// cutting pattern. Constraint `i<item>` requires enough items of each length to be produced
// and constraint `c<container>` limits the number of bounded containers used.
func GilmoreGomoryModel(containers Containers, items Items) (*lpmodel.Model[PatternVar], error) {
	if err := Validate(containers, items); err != nil {
		return nil, err
	}

	lengths := containers.Lengths()
	patterns := make(map[float64][]Pattern, len(lengths))
	for _, l := range lengths {
		patterns[l] = CuttingPatterns(items, l)
	}

	model := lpmodel.NewModelBuilder[PatternVar]()

	obj := lpmodel.NewLinearExpr[PatternVar]()
	for _, l := range lengths {
		for i := range patterns[l] {
			obj.AddTerm(PatternVar{l, i}, l)
		}
	}
	model.Minimize(obj)
	model.SetObjectiveComment("Minimize total container length")
	model.AddComment(patternsComment(lengths, patterns))

	demand := model.NewFamily("Minimum production of each item type")
	for _, item := range items.Lengths() {
		expr := lpmodel.NewLinearExpr[PatternVar]()
		for _, l := range lengths {
			for i, p := range patterns[l] {
				if n := p.Count(item); n != 0 {
					expr.AddTerm(PatternVar{l, i}, float64(n))
				}
			}
		}
		demand.AddGreaterOrEqual("i"+lpmodel.FormatNumber(item), expr, items[item])
	}

	bounds := model.NewFamily("Container upper bounds")
	for _, l := range lengths {
		if containers[l] == Unbounded || len(patterns[l]) == 0 {
			continue
		}
		expr := lpmodel.NewLinearExpr[PatternVar]()
		for i := range patterns[l] {
			expr.Add(PatternVar{l, i})
		}
		bounds.AddLessOrEqual(PatternVar{l, NoPattern}.Name(), expr, containers[l])
	}

	model.DeclareInteger(model.Variables()...)
	return model.Model()
}

// BuildGilmoreGomory returns the pattern-based model of the cutting stock problem in LP format.
func BuildGilmoreGomory(containers Containers, items Items) (string, error) {
	m, err := GilmoreGomoryModel(containers, items)
	if err != nil {
		return "", err
	}
	return lpmodel.ExportModelAsLpFormat(m)
}
