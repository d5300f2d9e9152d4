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

// The relax command reads a minimum-cost flow problem in the RELAX4 format from standard input
// and writes its LP model to standard output.
//
// Usage:
//
//	relax [-format lp|json] < problem.txt
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/voidbert/IO/lpmodel"
	"github.com/voidbert/IO/mincostflow"
)

var format = lpmodel.FormatLP

func init() {
	flag.Var(&format, "format", "output format, lp or json")
}

func relax() error {
	g, err := mincostflow.ReadRelax(os.Stdin)
	if err != nil {
		return err
	}
	log.V(1).Infof("Network has %d vertices and %d edges", g.VertexCount(), len(g.Edges()))

	m, err := g.Model()
	if err != nil {
		return fmt.Errorf("failed to build the model: %w", err)
	}
	out, err := lpmodel.ExportModel(m, format)
	if err != nil {
		return fmt.Errorf("failed to export the model: %w", err)
	}

	fmt.Print(out)
	return nil
}

func main() {
	flag.Parse()
	if err := relax(); err != nil {
		log.Exitf("relax returned with error: %v", err)
	}
}
