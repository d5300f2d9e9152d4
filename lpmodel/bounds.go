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
	"fmt"
	"math"
)

// ClosedInterval stores the closed interval `[start,end]` the left-hand side of a constraint
// must lie in. A `Start` equal to MinInt64 or an `End` equal to MaxInt64 represents an
// unbounded side. If the `Start` is greater than the `End`, the interval is considered empty.
type ClosedInterval struct {
	Start int64
	End   int64
}

// AtLeast returns the interval `[lb,+inf]`.
func AtLeast(lb int64) ClosedInterval {
	return ClosedInterval{lb, math.MaxInt64}
}

// AtMost returns the interval `[-inf,ub]`.
func AtMost(ub int64) ClosedInterval {
	return ClosedInterval{math.MinInt64, ub}
}

// Exactly returns the singleton interval `[v,v]`.
func Exactly(v int64) ClosedInterval {
	return ClosedInterval{v, v}
}

// IsEmpty reports whether no value lies in the interval.
func (c ClosedInterval) IsEmpty() bool {
	return c.Start > c.End
}

func (c ClosedInterval) lowerUnbounded() bool { return c.Start == math.MinInt64 }
func (c ClosedInterval) upperUnbounded() bool { return c.End == math.MaxInt64 }

// String returns the interval as `[start,end]`, with `-inf`/`+inf` for unbounded sides.
func (c ClosedInterval) String() string {
	start, end := fmt.Sprint(c.Start), fmt.Sprint(c.End)
	if c.lowerUnbounded() {
		start = "-inf"
	}
	if c.upperUnbounded() {
		end = "+inf"
	}
	return fmt.Sprintf("[%s,%s]", start, end)
}

// check returns an error if no LP relation can express the interval.
func (c ClosedInterval) check() error {
	switch {
	case c.IsEmpty():
		return fmt.Errorf("interval %v is empty", c)
	case c.lowerUnbounded() && c.upperUnbounded():
		return fmt.Errorf("interval %v does not constrain anything", c)
	}
	return nil
}

// relation writes `lhs` constrained to the interval, e.g. `x + y >= 3`, `x = 2` or
// `-1 <= x <= 4`. The interval must have passed check.
func (c ClosedInterval) relation(lhs string) string {
	switch {
	case c.Start == c.End:
		return fmt.Sprintf("%s = %d", lhs, c.Start)
	case c.upperUnbounded():
		return fmt.Sprintf("%s >= %d", lhs, c.Start)
	case c.lowerUnbounded():
		return fmt.Sprintf("%s <= %d", lhs, c.End)
	default:
		return fmt.Sprintf("%d <= %s <= %d", c.Start, lhs, c.End)
	}
}
