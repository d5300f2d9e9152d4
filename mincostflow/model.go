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

package mincostflow

import (
	"cmp"
	"fmt"

	"github.com/voidbert/IO/lpmodel"
)

// Arc is a directed edge between two vertices. As a model variable it is the flow along the
// edge, named `x<origin>_<destination>`.
type Arc struct {
	Origin      int64
	Destination int64
}

// Name returns `x<origin>_<destination>`.
func (a Arc) Name() string {
	return fmt.Sprintf("x%d_%d", a.Origin, a.Destination)
}

// Compare orders arcs by origin, then by destination.
func (a Arc) Compare(other Arc) int {
	if c := cmp.Compare(a.Origin, other.Origin); c != 0 {
		return c
	}
	return cmp.Compare(a.Destination, other.Destination)
}

// Model returns the minimum-cost flow LP of the network.
//
// The model minimizes the total cost of the flow. Constraint `v<i>` makes the flow leaving
// vertex i minus the flow entering it equal to its net flow, for every vertex with an edge. The
// flow along a self-loop cancels out, so a vertex whose only edge is a self-loop gets the row
// `v<i>: 0 = <net flow>`. Constraint `e<o>_<d>` limits the flow along each edge to its
// capacity. Every flow is an integer.
func (g *Graph) Model() (*lpmodel.Model[Arc], error) {
	model := lpmodel.NewModelBuilder[Arc]()
	arcs := g.Edges()

	obj := lpmodel.NewLinearExpr[Arc]()
	for _, a := range arcs {
		obj.AddTerm(a, float64(g.edges[a].Cost))
	}
	model.Minimize(obj)
	model.SetObjectiveComment("Minimize total flow cost")

	conservation := model.NewFamily("Flow conservation at each vertex")
	for v := int64(1); v <= int64(g.VertexCount()); v++ {
		expr := lpmodel.NewLinearExpr[Arc]()
		for _, a := range g.Outgoing(v) {
			expr.AddTerm(a, 1)
		}
		for _, a := range g.Incoming(v) {
			expr.AddTerm(a, -1)
		}
		if expr.Len() == 0 && !g.HasLoop(v) {
			continue
		}
		conservation.AddEquality(fmt.Sprintf("v%d", v), expr, g.VertexFlow(v))
	}

	capacity := model.NewFamily("Edge capacities")
	for _, a := range arcs {
		capacity.AddLessOrEqual(fmt.Sprintf("e%d_%d", a.Origin, a.Destination),
			lpmodel.NewLinearExpr[Arc]().Add(a), g.edges[a].Capacity)
	}

	model.DeclareInteger(arcs...)
	return model.Model()
}

// BuildModel returns the minimum-cost flow LP of the network in LP format.
func BuildModel(g *Graph) (string, error) {
	m, err := g.Model()
	if err != nil {
		return "", err
	}
	return lpmodel.ExportModelAsLpFormat(m)
}
