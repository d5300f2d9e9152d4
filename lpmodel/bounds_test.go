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
	"math"
	"testing"
)

func TestClosedInterval_Relation(t *testing.T) {
	testCases := []struct {
		interval ClosedInterval
		want     string
	}{
		{interval: AtLeast(13), want: "x >= 13"},
		{interval: AtMost(5), want: "x <= 5"},
		{interval: Exactly(-6), want: "x = -6"},
		{interval: ClosedInterval{-1, 4}, want: "-1 <= x <= 4"},
	}

	for _, test := range testCases {
		if err := test.interval.check(); err != nil {
			t.Fatalf("%v.check() returned with unexpected error %v", test.interval, err)
		}
		if got := test.interval.relation("x"); got != test.want {
			t.Errorf("%v.relation(x) = %q, want %q", test.interval, got, test.want)
		}
	}
}

func TestClosedInterval_Check(t *testing.T) {
	testCases := []struct {
		name     string
		interval ClosedInterval
	}{
		{name: "Empty", interval: ClosedInterval{3, 2}},
		{name: "Unbounded", interval: ClosedInterval{math.MinInt64, math.MaxInt64}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if err := test.interval.check(); err == nil {
				t.Errorf("%v.check() err = nil, want error", test.interval)
			}
		})
	}
}

func TestClosedInterval_String(t *testing.T) {
	testCases := []struct {
		interval ClosedInterval
		want     string
	}{
		{interval: AtLeast(0), want: "[0,+inf]"},
		{interval: AtMost(-2), want: "[-inf,-2]"},
		{interval: Exactly(7), want: "[7,7]"},
	}

	for _, test := range testCases {
		if got := test.interval.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
