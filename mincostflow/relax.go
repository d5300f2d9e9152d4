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

// Package mincostflow compiles minimum-cost flow problems in the RELAX4 text format into LP
// models.
//
// A RELAX4 file holds, one value per line, the number of vertices V, the number of edges E,
// E lines `origin destination cost capacity` and V lines holding the net flow each vertex must
// supply (positive) or absorb (negative). Vertices are numbered from 1.
package mincostflow

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// MaxCost is the largest absolute cost of an edge. Costs are objective coefficients, which are
// float64, and every integer up to MaxCost is exact.
const MaxCost = 1 << 53

// EdgeData holds the cost of a unit of flow along an edge and the most flow it can carry. The
// cost lies in [-MaxCost, MaxCost].
type EdgeData struct {
	Cost     int64
	Capacity int64
}

// Graph is a flow network.
type Graph struct {
	flows []int64
	edges map[Arc]EdgeData
	// adj holds every edge but self-loops, which simple graphs do not allow.
	adj   *simple.DirectedGraph
	loops map[int64]bool
}

// NewGraph returns a network with vertices 1 to `vertices`, no edges and no flow.
func NewGraph(vertices int) *Graph {
	g := &Graph{
		flows: make([]int64, vertices),
		edges: make(map[Arc]EdgeData),
		adj:   simple.NewDirectedGraph(),
		loops: make(map[int64]bool),
	}
	for v := 1; v <= vertices; v++ {
		g.adj.AddNode(simple.Node(v))
	}
	return g
}

// VertexCount returns the number of vertices of the network.
func (g *Graph) VertexCount() int {
	return len(g.flows)
}

func (g *Graph) hasVertex(v int64) bool {
	return v >= 1 && v <= int64(len(g.flows))
}

// SetVertexFlow sets the net flow of vertex `v`.
func (g *Graph) SetVertexFlow(v int64, flow int64) error {
	if !g.hasVertex(v) {
		return fmt.Errorf("vertex %d out of range [1, %d]", v, len(g.flows))
	}
	g.flows[v-1] = flow
	return nil
}

// VertexFlow returns the net flow of vertex `v`, 0 if there is no such vertex.
func (g *Graph) VertexFlow(v int64) int64 {
	if !g.hasVertex(v) {
		return 0
	}
	return g.flows[v-1]
}

// SetEdge adds the edge `a`, replacing its data if it already exists.
func (g *Graph) SetEdge(a Arc, data EdgeData) error {
	if !g.hasVertex(a.Origin) || !g.hasVertex(a.Destination) {
		return fmt.Errorf("edge %v out of range [1, %d]", a, len(g.flows))
	}
	if err := checkCost(data.Cost); err != nil {
		return err
	}
	g.edges[a] = data
	if a.Origin == a.Destination {
		g.loops[a.Origin] = true
		return nil
	}
	g.adj.SetEdge(g.adj.NewEdge(simple.Node(a.Origin), simple.Node(a.Destination)))
	return nil
}

// Edge returns the data of edge `a` and whether it exists.
func (g *Graph) Edge(a Arc) (EdgeData, bool) {
	data, ok := g.edges[a]
	return data, ok
}

// Edges returns every edge of the network, ordered by origin then destination.
func (g *Graph) Edges() []Arc {
	arcs := make([]Arc, 0, len(g.edges))
	for a := range g.edges {
		arcs = append(arcs, a)
	}
	sort.Slice(arcs, func(i, j int) bool { return arcs[i].Compare(arcs[j]) < 0 })
	return arcs
}

// Outgoing returns the edges leaving `v` for another vertex.
func (g *Graph) Outgoing(v int64) []Arc {
	var arcs []Arc
	for _, n := range graph.NodesOf(g.adj.From(v)) {
		arcs = append(arcs, Arc{v, n.ID()})
	}
	return arcs
}

// Incoming returns the edges entering `v` from another vertex.
func (g *Graph) Incoming(v int64) []Arc {
	var arcs []Arc
	for _, n := range graph.NodesOf(g.adj.To(v)) {
		arcs = append(arcs, Arc{n.ID(), v})
	}
	return arcs
}

// HasLoop reports whether there is an edge from `v` to itself.
func (g *Graph) HasLoop(v int64) bool {
	return g.loops[v]
}

// Balance returns the sum of the net flows of every vertex, 0 for a feasible network. The sum
// does not overflow.
func (g *Graph) Balance() *big.Int {
	sum := new(big.Int)
	for _, f := range g.flows {
		sum.Add(sum, big.NewInt(f))
	}
	return sum
}

func checkCost(cost int64) error {
	if cost < -MaxCost || cost > MaxCost {
		return errors.Errorf("cost %d out of range [-%d, %d]", cost, int64(MaxCost), int64(MaxCost))
	}
	return nil
}

// ParseError is the error returned when a RELAX4 file cannot be parsed. The message names the
// offending field and its 1-based line.
type ParseError struct {
	Line int
	Msg  string
	// Err is the cause of the error, if any.
	Err error
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Cause returns the cause of the error, for errors.Cause.
func (e *ParseError) Cause() error {
	return e.Err
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(line int, cause error, format string, a ...any) error {
	return errors.WithStack(&ParseError{Line: line, Msg: fmt.Sprintf(format, a...), Err: cause})
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseCount(lines []string, i int) (int, error) {
	if i >= len(lines) {
		return 0, errors.New("missing line")
	}
	n, err := parseInt(lines[i])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Errorf("negative count %d", n)
	}
	return int(n), nil
}

// parseVertex parses field `i` of `fields` as a vertex index in [1, vertices].
func parseVertex(fields []string, i, vertices int) (int64, error) {
	v, err := parseField(fields, i)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > int64(vertices) {
		return 0, errors.Errorf("vertex %d out of range [1, %d]", v, vertices)
	}
	return v, nil
}

func parseField(fields []string, i int) (int64, error) {
	if i >= len(fields) {
		return 0, errors.Errorf("missing field %d", i+1)
	}
	return parseInt(fields[i])
}

// ParseRelax parses the lines of a RELAX4 file. Parsing stops at the first error, a
// *ParseError. Edges given twice keep the data of their last line.
func ParseRelax(lines []string) (*Graph, error) {
	vertices, err := parseCount(lines, 0)
	if err != nil {
		return nil, parseErrorf(1, err, "failed to read number of vertices (line 1)")
	}
	edges, err := parseCount(lines, 1)
	if err != nil {
		return nil, parseErrorf(2, err, "failed to read number of edges (line 2)")
	}
	if want := 2 + vertices + edges; len(lines) != want {
		return nil, parseErrorf(len(lines), nil, "wrong number of lines (got %d, expected %d)", len(lines), want)
	}

	g := NewGraph(vertices)
	for i := 0; i < edges; i++ {
		line := i + 3
		fields := strings.Fields(lines[i+2])
		origin, err := parseVertex(fields, 0, vertices)
		if err != nil {
			return nil, parseErrorf(line, err, "failed to parse origin in edge %d (line %d)", i+1, line)
		}
		destination, err := parseVertex(fields, 1, vertices)
		if err != nil {
			return nil, parseErrorf(line, err, "failed to parse destination in edge %d (line %d)", i+1, line)
		}
		cost, err := parseField(fields, 2)
		if err == nil {
			err = checkCost(cost)
		}
		if err != nil {
			return nil, parseErrorf(line, err, "failed to parse cost in edge %d (line %d)", i+1, line)
		}
		capacity, err := parseField(fields, 3)
		if err != nil {
			return nil, parseErrorf(line, err, "failed to parse capacity in edge %d (line %d)", i+1, line)
		}
		if err := g.SetEdge(Arc{origin, destination}, EdgeData{Cost: cost, Capacity: capacity}); err != nil {
			return nil, parseErrorf(line, err, "failed to add edge %d (line %d)", i+1, line)
		}
	}

	for i := 0; i < vertices; i++ {
		line := i + edges + 3
		flow, err := parseInt(lines[line-1])
		if err != nil {
			return nil, parseErrorf(line, err, "failed to parse flow of vertex %d (line %d)", i+1, line)
		}
		if err := g.SetVertexFlow(int64(i+1), flow); err != nil {
			return nil, parseErrorf(line, err, "failed to set flow of vertex %d (line %d)", i+1, line)
		}
	}

	if balance := g.Balance(); balance.Sign() != 0 {
		return nil, parseErrorf(len(lines), nil, "unbalanced model (balance = %v)", balance)
	}
	return g, nil
}

// ReadRelax reads a RELAX4 file from `r` and parses it with ParseRelax.
func ReadRelax(r io.Reader) (*Graph, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read flow file")
	}
	return ParseRelax(lines)
}
