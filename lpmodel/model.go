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

package lpmodel

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/golang/glog"
)

// ErrInvalidModel holds the error when an element added to a model cannot be written in LP
// format.
var ErrInvalidModel = errors.New("invalid model")

// Objective is the function minimized by a model.
type Objective[V Variable[V]] struct {
	// Comment is written as a block comment just above the objective. Optional.
	Comment string
	Expr    *LinearExpr[V]
}

// Constraint is a named linear constraint `Expr` in `Bounds`.
type Constraint[V Variable[V]] struct {
	Label  string
	Expr   *LinearExpr[V]
	Bounds ClosedInterval
}

// ConstraintFamily is a group of constraints written together under a heading comment.
type ConstraintFamily[V Variable[V]] struct {
	Heading     string
	Constraints []Constraint[V]
}

// Model is a complete linear program, in the order its sections are written.
type Model[V Variable[V]] struct {
	Objective Objective[V]
	Comments  []string
	Families  []ConstraintFamily[V]
	Integers  []V
}

// Family is a reference to a constraint family of the model being built.
type Family[V Variable[V]] struct {
	ind int
	b   *Builder[V]
}

// AddLinearConstraint adds the constraint `expr` in `bounds`, named `label`.
func (f Family[V]) AddLinearConstraint(label string, expr *LinearExpr[V], bounds ClosedInterval) {
	b := f.b
	if !validName(label) {
		b.setErrorf("invalid constraint label %q", label)
		return
	}
	if b.labels[label] {
		b.setErrorf("constraint with label %s already exists", label)
		return
	}
	if err := bounds.check(); err != nil {
		b.setErrorf("constraint %s: %v", label, err)
		return
	}
	if expr == nil {
		expr = NewLinearExpr[V]()
	}
	if !expr.finite() {
		b.setErrorf("constraint %s has a non-finite coefficient", label)
		return
	}
	b.labels[label] = true
	b.track(expr)
	fam := &b.model.Families[f.ind]
	fam.Constraints = append(fam.Constraints, Constraint[V]{Label: label, Expr: expr.clone(), Bounds: bounds})
}

// AddGreaterOrEqual adds the constraint `expr >= lb`.
func (f Family[V]) AddGreaterOrEqual(label string, expr *LinearExpr[V], lb int64) {
	f.AddLinearConstraint(label, expr, AtLeast(lb))
}

// AddLessOrEqual adds the constraint `expr <= ub`.
func (f Family[V]) AddLessOrEqual(label string, expr *LinearExpr[V], ub int64) {
	f.AddLinearConstraint(label, expr, AtMost(ub))
}

// AddEquality adds the constraint `expr = v`.
func (f Family[V]) AddEquality(label string, expr *LinearExpr[V], v int64) {
	f.AddLinearConstraint(label, expr, Exactly(v))
}

// Builder collects the sections of a linear program.
type Builder[V Variable[V]] struct {
	model    Model[V]
	labels   map[string]bool
	vars     map[V]bool
	integers map[V]bool
	// The first and only the first error is reported in Model.
	err error
}

// NewModelBuilder creates and returns a new model Builder.
func NewModelBuilder[V Variable[V]]() *Builder[V] {
	return &Builder[V]{
		model:    Model[V]{Objective: Objective[V]{Expr: NewLinearExpr[V]()}},
		labels:   make(map[string]bool),
		vars:     make(map[V]bool),
		integers: make(map[V]bool),
	}
}

// setErrorf keeps the first error found while building and logs every one of them.
func (b *Builder[V]) setErrorf(format string, a ...any) {
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrInvalidModel
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v", err)
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder[V]) track(expr *LinearExpr[V]) {
	for v := range expr.coeffs {
		b.vars[v] = true
	}
}

// Minimize sets the objective of the model to the minimization of `expr`.
func (b *Builder[V]) Minimize(expr *LinearExpr[V]) {
	if expr == nil {
		expr = NewLinearExpr[V]()
	}
	if !expr.finite() {
		b.setErrorf("objective has a non-finite coefficient")
		return
	}
	b.track(expr)
	b.model.Objective.Expr = expr.clone()
}

// SetObjectiveComment sets the comment written above the objective.
func (b *Builder[V]) SetObjectiveComment(text string) {
	if strings.Contains(text, "*/") {
		b.setErrorf("objective comment %q contains a comment terminator", text)
		return
	}
	b.model.Objective.Comment = text
}

// AddComment adds a block comment, written after the objective. The text may span several
// lines.
func (b *Builder[V]) AddComment(text string) {
	if strings.Contains(text, "*/") {
		b.setErrorf("comment %q contains a comment terminator", text)
		return
	}
	b.model.Comments = append(b.model.Comments, text)
}

// NewFamily creates a new, empty constraint family. Families are written in creation order.
func (b *Builder[V]) NewFamily(heading string) Family[V] {
	if strings.Contains(heading, "*/") {
		b.setErrorf("family heading %q contains a comment terminator", heading)
		heading = ""
	}
	b.model.Families = append(b.model.Families, ConstraintFamily[V]{Heading: heading})
	return Family[V]{ind: len(b.model.Families) - 1, b: b}
}

// DeclareInteger declares the variables as integers. Declaring a variable twice has no effect.
func (b *Builder[V]) DeclareInteger(vars ...V) {
	for _, v := range vars {
		if !validName(v.Name()) {
			b.setErrorf("invalid variable name %q", v.Name())
			return
		}
		b.integers[v] = true
	}
}

// Variables returns every variable used by the objective or a constraint so far, ordered by
// Variable.Compare.
func (b *Builder[V]) Variables() []V {
	return sortedVars(b.vars)
}

// Model returns the built model. The model returned shares no expression with the builder.
//
// Model returns an error when invalid parameters have been used during model building (e.g.
// two constraints with the same label).
func (b *Builder[V]) Model() (*Model[V], error) {
	if b.err != nil {
		return nil, b.err
	}
	for v := range b.vars {
		if !validName(v.Name()) {
			return nil, fmt.Errorf("invalid variable name %q: %w", v.Name(), ErrInvalidModel)
		}
	}

	m := &Model[V]{
		Objective: Objective[V]{Comment: b.model.Objective.Comment, Expr: b.model.Objective.Expr.clone()},
		Comments:  append([]string(nil), b.model.Comments...),
		Integers:  sortedVars(b.integers),
	}
	for _, f := range b.model.Families {
		cts := make([]Constraint[V], len(f.Constraints))
		for i, ct := range f.Constraints {
			cts[i] = Constraint[V]{Label: ct.Label, Expr: ct.Expr.clone(), Bounds: ct.Bounds}
		}
		m.Families = append(m.Families, ConstraintFamily[V]{Heading: f.Heading, Constraints: cts})
	}
	return m, nil
}

func sortedVars[V Variable[V]](set map[V]bool) []V {
	vars := make([]V, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Compare(vars[j]) < 0 })
	return vars
}

// validName reports whether `s` can be used as a variable or constraint name in an LP file:
// it must not be empty, must not start with a digit or a sign, and may only contain letters,
// digits and the characters `_[]{}/.&#$%~'@^`.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case strings.ContainsRune("_[]{}/.&#$%~'@^", r):
			if i == 0 && r == '.' {
				return false
			}
		default:
			return false
		}
	}
	return true
}
