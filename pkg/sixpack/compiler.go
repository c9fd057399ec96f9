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
package sixpack

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/rgb-xyz/Sixpack/pkg/asg"
	"github.com/rgb-xyz/Sixpack/pkg/ast"
	"github.com/rgb-xyz/Sixpack/pkg/program"
	"github.com/rgb-xyz/Sixpack/pkg/symbols"
)

// Visibility controls how an added expression participates in compilation.
type Visibility uint8

const (
	// Public expressions are emitted as program outputs and are visible to
	// later expressions.
	Public Visibility = iota
	// Private expressions are emitted as program outputs but are not visible
	// to later expressions.
	Private
	// Symbolic expressions are visible to later expressions but are not
	// emitted as program outputs.
	Symbolic
)

// Compiler accumulates symbol and expression declarations, and compiles the
// accumulated outputs into a program.  Compilation is a pure pipeline: a
// failed Compile leaves the accumulated declarations intact and commits
// nothing.
type Compiler struct {
	lexicon *symbols.Lexicon
	outputs []*symbols.Expression
}

// NewCompiler constructs a new compiler with an empty lexicon.
func NewCompiler() *Compiler {
	return &Compiler{lexicon: symbols.NewLexicon()}
}

// Lexicon returns the symbol table of this compiler.
func (p *Compiler) Lexicon() *symbols.Lexicon {
	return p.lexicon
}

// AddConstant declares a named constant.
func (p *Compiler) AddConstant(name string, value float64) error {
	return p.lexicon.Add(symbols.NewConstant(name, value))
}

// AddFunction declares a named unary host function.
func (p *Compiler) AddFunction(name string, fn func(float64) float64) error {
	return p.lexicon.Add(symbols.NewFunction(name, fn))
}

// AddParameter declares a named parameter with an initial value.
func (p *Compiler) AddParameter(name string, value float64) error {
	return p.lexicon.Add(symbols.NewParameter(name, value))
}

// AddVariable declares a named runtime input.
func (p *Compiler) AddVariable(name string) error {
	return p.lexicon.Add(symbols.NewVariable(name))
}

// SetParameter assigns a new value to a previously declared parameter.  The
// assignment only affects programs compiled afterwards.
func (p *Compiler) SetParameter(name string, value float64) error {
	if parameter, ok := p.lexicon.Find(name).(*symbols.Parameter); ok {
		parameter.SetValue(value)
		return nil
	}
	//
	return fmt.Errorf("Unknown parameter '%s'", name)
}

// AddExpression parses a named expression and registers it according to its
// visibility.  A syntax failure does not fail this call: it is attached to
// the returned expression and surfaces when the expression is compiled.  The
// returned error reports duplicate names only.
func (p *Compiler) AddExpression(name string, text string, visibility Visibility) (ast.Expression, error) {
	expression := ParseExpression(p.lexicon, text)
	symbol := symbols.NewExpression(name, expression)
	//
	if visibility != Private {
		if err := p.lexicon.Add(symbol); err != nil {
			return expression, err
		}
	}
	//
	if visibility != Symbolic {
		for _, output := range p.outputs {
			if output.Name() == name {
				return expression, &CompileError{fmt.Sprintf("Duplicate output symbol '%s'", name)}
			}
		}
		//
		p.outputs = append(p.outputs, symbol)
	}
	//
	return expression, nil
}

// AddSourceScript parses a multi-line script, applying its declarations to
// this compiler.  Parse failures are reported with their position within the
// script.
func (p *Compiler) AddSourceScript(input string) error {
	parser := &scriptParser{p}
	return parser.parseScript(input)
}

// Inputs lists the declared input names, sorted.
func (p *Compiler) Inputs() []string {
	var inputs []string
	//
	for name, symbol := range p.lexicon.Symbols() {
		if _, ok := symbol.(*symbols.Variable); ok {
			inputs = append(inputs, name)
		}
	}
	//
	sort.Strings(inputs)
	//
	return inputs
}

// Parameters lists the declared parameters, sorted by name.
func (p *Compiler) Parameters() []*symbols.Parameter {
	var parameters []*symbols.Parameter
	//
	for _, symbol := range p.lexicon.Symbols() {
		if parameter, ok := symbol.(*symbols.Parameter); ok {
			parameters = append(parameters, parameter)
		}
	}
	//
	sort.Slice(parameters, func(i, j int) bool {
		return parameters[i].Name() < parameters[j].Name()
	})
	//
	return parameters
}

// Outputs lists the expressions to be emitted as program outputs, in
// declaration order.
func (p *Compiler) Outputs() []*symbols.Expression {
	return p.outputs
}

// MakeGraph builds the semantic graph of the accumulated outputs, without
// rewriting it.
func (p *Compiler) MakeGraph() (asg.Term, error) {
	graph, err := asg.BuildGraph(p.outputs)
	if err != nil {
		return nil, &CompileError{err.Error()}
	}
	//
	return graph, nil
}

// Compile builds the semantic graph of the accumulated outputs, runs the
// rewrite pipeline over it, and generates a program.
func (p *Compiler) Compile() (*program.Program, error) {
	log.Debugf("compiling %d outputs", len(p.outputs))
	//
	graph, err := p.MakeGraph()
	if err != nil {
		return nil, err
	}
	//
	rewritten := asg.NewPipeline().Apply(graph)
	//
	log.Debugf("rewritten graph has depth %d", rewritten.Depth())
	//
	compiled, err := program.Generate(rewritten, p.lexicon)
	if err != nil {
		return nil, &CompileError{err.Error()}
	}
	//
	return compiled, nil
}
