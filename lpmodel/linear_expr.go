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

// Package lpmodel offers a small API to build linear programs and write them in LP format.
//
// The `LinearExpr` struct holds a sum of variables and their coefficients. Variables are
// user-defined comparable values implementing `Variable`, so that each formulation keeps its
// own variable identity (and canonical form) instead of relying on generated names.
// The `Builder` struct collects the objective, comments, constraint families and integrality
// declarations of a model, and `ExportModelAsLpFormat` renders the resulting `Model`.
package lpmodel

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Variable is a decision variable identity. Name is the identifier written to the LP file and
// Compare defines the order in which terms of a sum are written.
type Variable[V any] interface {
	comparable
	Name() string
	Compare(other V) int
}

// Term is a variable with its coefficient in a LinearExpr.
type Term[V Variable[V]] struct {
	Var   V
	Coeff float64
}

// LinearExpr is a container for a linear expression. Variables with a zero coefficient are
// never stored.
type LinearExpr[V Variable[V]] struct {
	coeffs map[V]float64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr[V Variable[V]]() *LinearExpr[V] {
	return &LinearExpr[V]{coeffs: make(map[V]float64)}
}

// Add adds the variable with coefficient 1 to the LinearExpr and returns itself.
func (l *LinearExpr[V]) Add(v V) *LinearExpr[V] {
	return l.AddTerm(v, 1)
}

// AddTerm adds the variable with the given coefficient to the LinearExpr and returns itself.
// Coefficients of the same variable are summed.
func (l *LinearExpr[V]) AddTerm(v V, coeff float64) *LinearExpr[V] {
	c := l.coeffs[v] + coeff
	if c == 0 {
		delete(l.coeffs, v)
	} else {
		l.coeffs[v] = c
	}
	return l
}

// AddExpr adds every term of `e`, scaled by `coeff`, to the LinearExpr and returns itself.
func (l *LinearExpr[V]) AddExpr(e *LinearExpr[V], coeff float64) *LinearExpr[V] {
	if e == nil {
		return l
	}
	for v, c := range e.coeffs {
		l.AddTerm(v, c*coeff)
	}
	return l
}

// Coefficient returns the coefficient of `v`, zero when absent.
func (l *LinearExpr[V]) Coefficient(v V) float64 {
	return l.coeffs[v]
}

// Len returns the number of variables with a non-zero coefficient.
func (l *LinearExpr[V]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.coeffs)
}

// Terms returns the terms of the expression ordered by Variable.Compare.
func (l *LinearExpr[V]) Terms() []Term[V] {
	if l == nil {
		return nil
	}
	terms := make([]Term[V], 0, len(l.coeffs))
	for v, c := range l.coeffs {
		terms = append(terms, Term[V]{Var: v, Coeff: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Var.Compare(terms[j].Var) < 0
	})
	return terms
}

// Variables returns the variables of the expression ordered by Variable.Compare.
func (l *LinearExpr[V]) Variables() []V {
	terms := l.Terms()
	vars := make([]V, len(terms))
	for i, t := range terms {
		vars[i] = t.Var
	}
	return vars
}

// String returns the expression in LP syntax, e.g. `2 x + y + -1 z`. A coefficient of 1 is
// omitted and an empty expression is written as `0`.
func (l *LinearExpr[V]) String() string {
	terms := l.Terms()
	if len(terms) == 0 {
		return "0"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		if t.Coeff == 1 {
			parts[i] = t.Var.Name()
		} else {
			parts[i] = FormatNumber(t.Coeff) + " " + t.Var.Name()
		}
	}
	return strings.Join(parts, " + ")
}

func (l *LinearExpr[V]) clone() *LinearExpr[V] {
	return NewLinearExpr[V]().AddExpr(l, 1)
}

func (l *LinearExpr[V]) finite() bool {
	for _, c := range l.coeffs {
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return false
		}
	}
	return true
}

// MergeLinearExprs returns a new expression holding the sum of all `exprs`. Coefficients of
// identical variables are added and variables whose coefficients cancel out are dropped.
func MergeLinearExprs[V Variable[V]](exprs ...*LinearExpr[V]) *LinearExpr[V] {
	merged := NewLinearExpr[V]()
	for _, e := range exprs {
		merged.AddExpr(e, 1)
	}
	return merged
}

// FormatNumber writes `x` with the fewest digits that represent it exactly, without exponent
// and regardless of locale, e.g. `11`, `2.5` or `-1`.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
