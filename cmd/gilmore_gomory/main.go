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

// The gilmore_gomory command writes the pattern-based LP model of a cutting stock problem to
// standard output.
//
// Usage:
//
//	gilmore_gomory -containers 11:inf,10:5,7:5 -items 2:13,4:9,5:5 [-format lp|json]
package main

import (
	"flag"
	"fmt"

	log "github.com/golang/glog"
	"github.com/voidbert/IO/cuttingstock"
	"github.com/voidbert/IO/lpmodel"
)

var (
	containers = cuttingstock.Containers{11: cuttingstock.Unbounded, 10: 5, 7: 5}
	items      = cuttingstock.Items{2: 13, 4: 9, 5: 5}
	format     = lpmodel.FormatLP
)

func init() {
	flag.Var(&containers, "containers", "container lengths and how many are available, `length:count,...` (count inf or omitted for unbounded)")
	flag.Var(&items, "items", "item lengths and their demand, `length:demand,...`")
	flag.Var(&format, "format", "output format, lp or json")
}

func gilmoreGomory() error {
	for _, l := range containers.Lengths() {
		log.V(1).Infof("Container %v has %d cutting patterns", l, len(cuttingstock.CuttingPatterns(items, l)))
	}

	m, err := cuttingstock.GilmoreGomoryModel(containers, items)
	if err != nil {
		return fmt.Errorf("failed to build the model: %w", err)
	}
	out, err := lpmodel.ExportModel(m, format)
	if err != nil {
		return fmt.Errorf("failed to export the model: %w", err)
	}
	log.V(1).Infof("Model has %d variables", len(m.Integers))

	fmt.Print(out)
	return nil
}

func main() {
	flag.Parse()
	if err := gilmoreGomory(); err != nil {
		log.Exitf("gilmoreGomory returned with error: %v", err)
	}
}
