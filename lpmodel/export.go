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
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExportModelAsLpFormat outputs the model as a string in LP format.
//
// Sections are written in this order, separated by a blank line: the objective, the comments,
// every non-empty constraint family and the integrality declaration.
func ExportModelAsLpFormat[V Variable[V]](m *Model[V]) (string, error) {
	if m == nil {
		return "", errors.New("cannot export a nil model as LP format")
	}

	var sections []string

	objective := fmt.Sprintf("min: %s;", m.Objective.Expr)
	if m.Objective.Comment != "" {
		objective = fmt.Sprintf("/* %s */\n%s", m.Objective.Comment, objective)
	}
	sections = append(sections, objective)

	for _, c := range m.Comments {
		sections = append(sections, blockComment(c))
	}

	for _, f := range m.Families {
		if len(f.Constraints) == 0 {
			continue
		}
		var lines []string
		if f.Heading != "" {
			lines = append(lines, fmt.Sprintf("/* %s */", f.Heading))
		}
		for _, ct := range f.Constraints {
			if err := ct.Bounds.check(); err != nil {
				return "", fmt.Errorf("constraint %s: %v: %w", ct.Label, err, ErrInvalidModel)
			}
			lines = append(lines, fmt.Sprintf("%s: %s;", ct.Label, ct.Bounds.relation(ct.Expr.String())))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(m.Integers) > 0 {
		names := make([]string, len(m.Integers))
		for i, v := range m.Integers {
			names[i] = v.Name()
		}
		sections = append(sections, fmt.Sprintf("int %s;", strings.Join(names, ", ")))
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}

// blockComment writes `text` as a multi-line comment, indenting every line by two spaces.
func blockComment(text string) string {
	var sb strings.Builder
	sb.WriteString("/*\n")
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			sb.WriteString("  ")
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("*/")
	return sb.String()
}

func termsAsValues[V Variable[V]](e *LinearExpr[V]) []any {
	terms := e.Terms()
	values := make([]any, len(terms))
	for i, t := range terms {
		values[i] = map[string]any{"variable": t.Var.Name(), "coefficient": t.Coeff}
	}
	return values
}

// ExportModelAsProto outputs the model as a protobuf Struct, for consumers that would rather not
// parse LP text. Unbounded sides of a constraint are left out.
func ExportModelAsProto[V Variable[V]](m *Model[V]) (*structpb.Struct, error) {
	if m == nil {
		return nil, errors.New("cannot export a nil model as proto")
	}

	comments := make([]any, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = c
	}

	var families []any
	for _, f := range m.Families {
		constraints := make([]any, len(f.Constraints))
		for i, ct := range f.Constraints {
			if err := ct.Bounds.check(); err != nil {
				return nil, fmt.Errorf("constraint %s: %v: %w", ct.Label, err, ErrInvalidModel)
			}
			c := map[string]any{"label": ct.Label, "terms": termsAsValues(ct.Expr)}
			if !ct.Bounds.lowerUnbounded() {
				c["lower_bound"] = ct.Bounds.Start
			}
			if !ct.Bounds.upperUnbounded() {
				c["upper_bound"] = ct.Bounds.End
			}
			constraints[i] = c
		}
		families = append(families, map[string]any{"heading": f.Heading, "constraints": constraints})
	}

	integers := make([]any, len(m.Integers))
	for i, v := range m.Integers {
		integers[i] = v.Name()
	}

	s, err := structpb.NewStruct(map[string]any{
		"objective": map[string]any{
			"sense":   "minimize",
			"comment": m.Objective.Comment,
			"terms":   termsAsValues(m.Objective.Expr),
		},
		"comments": comments,
		"families": families,
		"integers": integers,
	})
	if err != nil {
		return nil, fmt.Errorf("converting model to proto failed: %w", err)
	}
	return s, nil
}

// ExportModelAsJSON outputs the proto rendering of the model (see ExportModelAsProto) as
// indented JSON. The exact whitespace is not stable across protobuf releases.
func ExportModelAsJSON[V Variable[V]](m *Model[V]) (string, error) {
	s, err := ExportModelAsProto(m)
	if err != nil {
		return "", err
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling model failed: %w", err)
	}
	return string(b), nil
}

// Format is an output format of a model. It implements flag.Value.
type Format string

const (
	// FormatLP is the LP text format of ExportModelAsLpFormat.
	FormatLP Format = "lp"
	// FormatJSON is the JSON rendering of ExportModelAsJSON.
	FormatJSON Format = "json"
)

func (f *Format) String() string {
	return string(*f)
}

// Set sets the format from its name, `lp` or `json`.
func (f *Format) Set(value string) error {
	switch Format(value) {
	case FormatLP, FormatJSON:
		*f = Format(value)
		return nil
	}
	return fmt.Errorf("unknown format %q, want %q or %q", value, FormatLP, FormatJSON)
}

// ExportModel outputs the model in format `f`.
func ExportModel[V Variable[V]](m *Model[V], f Format) (string, error) {
	switch f {
	case FormatLP:
		return ExportModelAsLpFormat(m)
	case FormatJSON:
		s, err := ExportModelAsJSON(m)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	}
	return "", fmt.Errorf("unknown format %q", f)
}
