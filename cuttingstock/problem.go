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

// Package cuttingstock writes LP models of one-dimensional cutting stock problems.
//
// Two formulations are offered for the same problem. The Gilmore-Gomory formulation
// enumerates every cutting pattern of every container and has one variable per pattern. The
// Dyckhoff one-cut formulation has one variable per distinct cut of a length into two smaller
// lengths, linked by balance constraints over the residual lengths.
package cuttingstock

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/maps"
)

// Unbounded is the container bound meaning that any number of containers is available.
const Unbounded int64 = math.MaxInt64

// lengthPrecision is the number of decimal places kept when subtracting lengths, so that
// 10.1 - 2.3 and 7.8 refer to the same residual.
const lengthPrecision = 1e9

// ErrInvalidProblem holds the error when the containers or items cannot describe a cutting
// stock problem.
var ErrInvalidProblem = errors.New("invalid cutting stock problem")

// Containers associates every container length to the number of containers available of that
// length, or Unbounded.
type Containers map[float64]int64

// Items associates every item length to the number of items of that length that must be cut.
type Items map[float64]int64

// Lengths returns the container lengths in increasing order.
func (c Containers) Lengths() []float64 {
	lengths := maps.Keys(c)
	slices.Sort(lengths)
	return lengths
}

// Lengths returns the item lengths in increasing order.
func (i Items) Lengths() []float64 {
	lengths := maps.Keys(i)
	slices.Sort(lengths)
	return lengths
}

// Smallest returns the smallest item length, or +Inf when there are no items.
func (i Items) Smallest() float64 {
	smallest := math.Inf(1)
	for l := range i {
		smallest = math.Min(smallest, l)
	}
	return smallest
}

// Validate checks that there is at least one container and one item, that every length is
// positive and finite, that every demand is positive and that no bound is negative.
func Validate(containers Containers, items Items) error {
	if len(containers) == 0 {
		return fmt.Errorf("no containers: %w", ErrInvalidProblem)
	}
	if len(items) == 0 {
		return fmt.Errorf("no items: %w", ErrInvalidProblem)
	}
	for _, l := range containers.Lengths() {
		if !validLength(l) {
			return fmt.Errorf("container length %v is not a positive finite number: %w", l, ErrInvalidProblem)
		}
		if containers[l] < 0 {
			return fmt.Errorf("container %v has a negative bound %v: %w", l, containers[l], ErrInvalidProblem)
		}
	}
	for _, l := range items.Lengths() {
		if !validLength(l) {
			return fmt.Errorf("item length %v is not a positive finite number: %w", l, ErrInvalidProblem)
		}
		if items[l] <= 0 {
			return fmt.Errorf("item %v has a non-positive demand %v: %w", l, items[l], ErrInvalidProblem)
		}
	}
	return nil
}

func validLength(l float64) bool {
	return l > 0 && !math.IsInf(l, 0) && !math.IsNaN(l)
}

func roundLength(l float64) float64 {
	return math.Round(l*lengthPrecision) / lengthPrecision
}

// subtractLength returns l - k rounded to lengthPrecision.
func subtractLength(l, k float64) float64 {
	return roundLength(l - k)
}

// addLength returns l + k rounded to lengthPrecision.
func addLength(l, k float64) float64 {
	return roundLength(l + k)
}
