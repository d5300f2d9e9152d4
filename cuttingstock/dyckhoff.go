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

	"github.com/voidbert/IO/lpmodel"
)

// OneCutKind tells the two kinds of variables of the one-cut formulation apart.
type OneCutKind int

const (
	// UsageVar counts the containers of a length that are used.
	UsageVar OneCutKind = iota
	// CutVar counts how many times a length is cut in two.
	CutVar
)

// OneCutVar is a variable of the Dyckhoff one-cut formulation. A usage variable `m<Length>`
// only uses Length. A cut variable `y<Length>_<Cut>` counts the pieces of length Length cut
// into Cut and Length-Cut.
type OneCutVar struct {
	Kind   OneCutKind
	Length float64
	Cut    float64
}

// NewUsageVar returns the usage variable of containers of length `l`.
func NewUsageVar(l float64) OneCutVar {
	return OneCutVar{Kind: UsageVar, Length: l}
}

// NewCutVar returns the variable cutting `l` into `k` and `l-k`, in canonical form: both
// (l, k) and (l, l-k) name the same cut, and the one kept has an item length as its second
// component. When both or neither are item lengths, the smaller second component is kept.
func NewCutVar(l, k float64, items Items) OneCutVar {
	mirror := subtractLength(l, k)
	_, kItem := items[k]
	_, mirrorItem := items[mirror]
	if (mirrorItem && !kItem) || (kItem == mirrorItem && mirror < k) {
		k = mirror
	}
	return OneCutVar{Kind: CutVar, Length: l, Cut: k}
}

// Name returns `m<length>` or `y<length>_<cut>`.
func (v OneCutVar) Name() string {
	if v.Kind == UsageVar {
		return "m" + lpmodel.FormatNumber(v.Length)
	}
	return fmt.Sprintf("y%s_%s", lpmodel.FormatNumber(v.Length), lpmodel.FormatNumber(v.Cut))
}

// Compare puts usage variables first, then orders by decreasing length and cut.
func (v OneCutVar) Compare(other OneCutVar) int {
	if c := cmp.Compare(v.Kind, other.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(other.Length, v.Length); c != 0 {
		return c
	}
	return cmp.Compare(other.Cut, v.Cut)
}

// Residuals returns every length that can be left after cutting items from the containers,
// item lengths included. Lengths shorter than the smallest item are waste and are left out.
func Residuals(containers Containers, items Items) map[float64]bool {
	smallest := items.Smallest()
	itemLengths := items.Lengths()

	residuals := make(map[float64]bool)
	toCut := containers.Lengths()
	queued := make(map[float64]bool, len(toCut))
	for _, l := range toCut {
		queued[l] = true
	}

	for len(toCut) > 0 {
		l := toCut[0]
		toCut = toCut[1:]
		for _, item := range itemLengths {
			if item >= l {
				break
			}
			residuals[item] = true
			rest := subtractLength(l, item)
			if rest < smallest {
				continue
			}
			residuals[rest] = true
			if !queued[rest] {
				queued[rest] = true
				toCut = append(toCut, rest)
			}
		}
	}
	return residuals
}

// cutRef is a cut as written in a sum of the one-cut model, before canonicalization: (L, K)
// and (L, L-K) are different references to the same cut.
type cutRef struct {
	L, K float64
}

func (r cutRef) Name() string {
	return fmt.Sprintf("y%s_%s", lpmodel.FormatNumber(r.L), lpmodel.FormatNumber(r.K))
}

func (r cutRef) Compare(other cutRef) int {
	if c := cmp.Compare(other.L, r.L); c != 0 {
		return c
	}
	return cmp.Compare(other.K, r.K)
}

// oneCut holds the lengths a one-cut model is built from.
type oneCut struct {
	containers Containers
	items      Items
	// stock holds the container and residual lengths, the lengths that may be cut.
	stock map[float64]bool
}

func newOneCut(containers Containers, items Items) *oneCut {
	stock := Residuals(containers, items)
	for l := range containers {
		stock[l] = true
	}
	return &oneCut{containers: containers, items: items, stock: stock}
}

// sum adds up the references of every family, then collapses them to canonical variables.
// Identical references add up, as cutting 4 into 2 and 2 yields two pieces of length 2. A
// reference to the mirror of a cut already present is the same physical cut seen from its
// other side and is not counted again.
func (oc *oneCut) sum(families ...*lpmodel.LinearExpr[cutRef]) *lpmodel.LinearExpr[OneCutVar] {
	refs := lpmodel.MergeLinearExprs(families...)

	sum := lpmodel.NewLinearExpr[OneCutVar]()
	seen := make(map[OneCutVar]cutRef)
	for _, t := range refs.Terms() {
		v := NewCutVar(t.Var.L, t.Var.K, oc.items)
		if ref, ok := seen[v]; ok && ref != t.Var {
			continue
		}
		seen[v] = t.Var
		sum.AddTerm(v, t.Coeff)
	}
	return sum
}

// entries returns the cuts leaving `l` as the rest after cutting an item k from k+l.
func (oc *oneCut) entries(l, coeff float64) *lpmodel.LinearExpr[cutRef] {
	e := lpmodel.NewLinearExpr[cutRef]()
	for k := range oc.items {
		if whole := addLength(k, l); oc.stock[whole] {
			e.AddTerm(cutRef{whole, k}, coeff)
		}
	}
	return e
}

// exits returns the cuts of `l` into an item and a rest.
func (oc *oneCut) exits(l, coeff float64) *lpmodel.LinearExpr[cutRef] {
	e := lpmodel.NewLinearExpr[cutRef]()
	for k := range oc.items {
		if k < l {
			e.AddTerm(cutRef{l, k}, coeff)
		}
	}
	return e
}

// cutOffs returns the cuts of longer lengths that produce item `l`.
func (oc *oneCut) cutOffs(l float64) *lpmodel.LinearExpr[cutRef] {
	e := lpmodel.NewLinearExpr[cutRef]()
	if _, ok := oc.items[l]; !ok {
		return e
	}
	for k := range oc.stock {
		if k > l {
			e.AddTerm(cutRef{k, l}, 1)
		}
	}
	return e
}

// usage returns the number of cuts taken from containers of length `l`, net of the pieces of
// length `l` left over by other cuts.
func (oc *oneCut) usage(l float64) *lpmodel.LinearExpr[OneCutVar] {
	return oc.sum(oc.entries(l, -1), oc.exits(l, 1))
}

// balance returns the pieces of length `l` produced minus the pieces of length `l` cut.
func (oc *oneCut) balance(l float64) *lpmodel.LinearExpr[OneCutVar] {
	return oc.sum(oc.cutOffs(l), oc.entries(l, 1), oc.exits(l, -1))
}

// balancedLengths returns the item and residual lengths that are not container lengths, in
// increasing order.
func (oc *oneCut) balancedLengths() []float64 {
	var lengths []float64
	for l := range oc.stock {
		if _, ok := oc.containers[l]; !ok {
			lengths = append(lengths, l)
		}
	}
	for l := range oc.items {
		if _, ok := oc.containers[l]; !ok && !oc.stock[l] {
			lengths = append(lengths, l)
		}
	}
	slices.Sort(lengths)
	return lengths
}

// DyckhoffModel returns the one-cut model of the cutting stock problem.
//
// The model minimizes the total length of the containers used, given by the usage variables
// `m<l>`. Constraint `m<l>` makes each usage variable count the cuts taken from containers of
// length l, constraint `l<l>` balances the pieces of each item and residual length, and
// constraint `c<l>` limits the number of bounded containers used. Every cut variable is an
// integer.
func DyckhoffModel(containers Containers, items Items) (*lpmodel.Model[OneCutVar], error) {
	if err := Validate(containers, items); err != nil {
		return nil, err
	}

	oc := newOneCut(containers, items)
	lengths := containers.Lengths()
	model := lpmodel.NewModelBuilder[OneCutVar]()

	obj := lpmodel.NewLinearExpr[OneCutVar]()
	for _, l := range lengths {
		obj.AddTerm(NewUsageVar(l), l)
	}
	model.Minimize(obj)
	model.SetObjectiveComment("Minimize total container length")

	used := model.NewFamily("Containers used of each length")
	for _, l := range lengths {
		m := NewUsageVar(l)
		used.AddGreaterOrEqual(m.Name(), lpmodel.NewLinearExpr[OneCutVar]().Add(m).AddExpr(oc.usage(l), -1), 0)
	}

	balance := model.NewFamily("Balance of pieces of each length")
	for _, l := range oc.balancedLengths() {
		balance.AddGreaterOrEqual("l"+lpmodel.FormatNumber(l), oc.balance(l), items[l])
	}

	bounds := model.NewFamily("Container upper bounds")
	for _, l := range lengths {
		if containers[l] == Unbounded {
			continue
		}
		bounds.AddLessOrEqual("c"+lpmodel.FormatNumber(l), oc.usage(l), containers[l])
	}

	var cuts []OneCutVar
	for _, v := range model.Variables() {
		if v.Kind == CutVar {
			cuts = append(cuts, v)
		}
	}
	model.DeclareInteger(cuts...)
	return model.Model()
}

// BuildDyckhoff returns the one-cut model of the cutting stock problem in LP format.
func BuildDyckhoff(containers Containers, items Items) (string, error) {
	m, err := DyckhoffModel(containers, items)
	if err != nil {
		return "", err
	}
	return lpmodel.ExportModelAsLpFormat(m)
}
