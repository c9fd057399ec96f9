// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package asg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpGraph writes an indented dump of a term graph, one term per line.
// Since the graph is a DAG, a term reachable via several parents is expanded
// only on its first visit and referenced afterwards.
func DumpGraph(w io.Writer, root Term) {
	dumper := &graphDumper{w, make(map[Term]int), 0}
	dumper.dump(root, "", 1)
}

type graphDumper struct {
	w       io.Writer
	visited map[Term]int
	counter int
}

func (p *graphDumper) dump(term Term, prefix string, indent int) {
	padding := strings.Repeat("  ", indent-1)
	//
	if id, ok := p.visited[term]; ok {
		fmt.Fprintf(p.w, "%s%s@%d\n", padding, prefix, id)
		return
	}
	//
	p.counter++
	p.visited[term] = p.counter
	//
	fmt.Fprintf(p.w, "%s%s%s #%d (depth %d)\n", padding, prefix, describe(term), p.counter, term.Depth())
	//
	switch t := term.(type) {
	case *Sequence:
		for _, child := range t.Terms() {
			p.dump(child, "", indent+1)
		}
	case *Output:
		p.dump(t.Term(), "", indent+1)
	case *UnaryFunction:
		p.dump(t.Argument(), "", indent+1)
	case *Addition:
		p.dumpGroup(&t.group, "+", "-", indent)
	case *Multiplication:
		p.dumpGroup(&t.group, "*", "/", indent)
	case *Exponentiation:
		p.dump(t.Base(), "", indent+1)
		p.dump(t.Exponent(), "^", indent+1)
	case *Squaring:
		p.dump(t.Base(), "", indent+1)
	}
}

func (p *graphDumper) dumpGroup(g *group, positiveSign string, negativeSign string, indent int) {
	for _, child := range g.positive {
		p.dump(child, positiveSign+" ", indent+1)
	}
	for _, child := range g.negative {
		p.dump(child, negativeSign+" ", indent+1)
	}
}

func describe(term Term) string {
	switch t := term.(type) {
	case *Sequence:
		return "sequence"
	case *Constant:
		return strconv.FormatFloat(t.Value(), 'g', -1, 64)
	case *Input:
		return fmt.Sprintf("input '%s'", t.Name())
	case *Output:
		return fmt.Sprintf("output '%s'", t.Name())
	case *UnaryFunction:
		return fmt.Sprintf("call '%s'", t.Function().Name())
	case *Addition:
		return fmt.Sprintf("addition (constant %s)", t.ConstantTerm().Key())
	case *Multiplication:
		return fmt.Sprintf("multiplication (constant %s)", t.ConstantTerm().Key())
	case *Exponentiation:
		return "exponentiation"
	case *Squaring:
		return "squaring"
	default:
		return "term"
	}
}
