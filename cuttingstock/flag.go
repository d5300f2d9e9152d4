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
	"fmt"
	"strconv"
	"strings"

	"github.com/voidbert/IO/lpmodel"
)

// Containers and Items implement flag.Value, so that a problem can be given on the command line
// as a comma-separated list of `length:quantity` pairs, e.g. `-containers 11:inf,10:5,7:5`.

func parsePairs(value string, parse func(length float64, quantity string) error) error {
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		l, q, _ := strings.Cut(pair, ":")
		length, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			return fmt.Errorf("can't get length of %q", pair)
		}
		if err := parse(length, strings.TrimSpace(q)); err != nil {
			return err
		}
	}
	return nil
}

// Set replaces the containers by the ones in `value`. A missing quantity, or `inf`, stands for
// Unbounded.
func (c *Containers) Set(value string) error {
	parsed := make(Containers)
	err := parsePairs(value, func(length float64, quantity string) error {
		if _, ok := parsed[length]; ok {
			return fmt.Errorf("container %v given twice", length)
		}
		if quantity == "" || quantity == "inf" {
			parsed[length] = Unbounded
			return nil
		}
		bound, err := strconv.ParseInt(quantity, 10, 64)
		if err != nil {
			return fmt.Errorf("can't get bound of container %v", length)
		}
		parsed[length] = bound
		return nil
	})
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// String returns the containers in the format accepted by Set, longest first.
func (c *Containers) String() string {
	if c == nil {
		return ""
	}
	lengths := c.Lengths()
	pairs := make([]string, 0, len(lengths))
	for i := len(lengths) - 1; i >= 0; i-- {
		l := lengths[i]
		bound := "inf"
		if (*c)[l] != Unbounded {
			bound = strconv.FormatInt((*c)[l], 10)
		}
		pairs = append(pairs, lpmodel.FormatNumber(l)+":"+bound)
	}
	return strings.Join(pairs, ",")
}

// Set replaces the items by the ones in `value`. Every item needs a demand.
func (i *Items) Set(value string) error {
	parsed := make(Items)
	err := parsePairs(value, func(length float64, quantity string) error {
		if _, ok := parsed[length]; ok {
			return fmt.Errorf("item %v given twice", length)
		}
		demand, err := strconv.ParseInt(quantity, 10, 64)
		if err != nil {
			return fmt.Errorf("can't get demand of item %v", length)
		}
		parsed[length] = demand
		return nil
	})
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// String returns the items in the format accepted by Set, shortest first.
func (i *Items) String() string {
	if i == nil {
		return ""
	}
	var pairs []string
	for _, l := range i.Lengths() {
		pairs = append(pairs, lpmodel.FormatNumber(l)+":"+strconv.FormatInt((*i)[l], 10))
	}
	return strings.Join(pairs, ",")
}
