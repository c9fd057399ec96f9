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
	"strconv"

	"github.com/rgb-xyz/Sixpack/pkg/symbols"
	"github.com/rgb-xyz/Sixpack/pkg/util"
)

// ============================================================================
// Constant
// ============================================================================

// Constant is a terminal term holding a fixed value.
type Constant struct {
	cache
	value float64
}

// NewConstant constructs a new constant term.  A negative zero is
// canonicalised to a positive zero, so that both produce the same key.
func NewConstant(value float64) *Constant {
	if value == 0.0 {
		value = 0.0
	}
	//
	return &Constant{value: value}
}

// Value returns the value of this constant.
func (p *Constant) Value() float64 { return p.value }

// Depth implementation for the Term interface.
func (p *Constant) Depth() int {
	return p.getDepth(func() int { return 0 })
}

// Key implementation for the Term interface.
func (p *Constant) Key() string {
	return p.getKey(func() string {
		return strconv.FormatFloat(p.value, 'g', -1, 64)
	})
}

// Fold implementation for the Term interface.
func (p *Constant) Fold() util.Option[float64] {
	return util.Some(p.value)
}

// ============================================================================
// Input
// ============================================================================

// Input is a terminal term referencing a runtime input by name.
type Input struct {
	cache
	name string
}

// NewInput constructs a new input term.
func NewInput(name string) *Input {
	return &Input{name: name}
}

// Name returns the input name.
func (p *Input) Name() string { return p.name }

// Depth implementation for the Term interface.
func (p *Input) Depth() int {
	return p.getDepth(func() int { return 0 })
}

// Key implementation for the Term interface.
func (p *Input) Key() string {
	return p.getKey(func() string { return p.name })
}

// Fold implementation for the Term interface.
func (p *Input) Fold() util.Option[float64] {
	return util.None[float64]()
}

// ============================================================================
// Output
// ============================================================================

// Output is a labelled sink binding a name to the term producing its value.
type Output struct {
	cache
	name string
	term Term
}

// NewOutput constructs a new output term.
func NewOutput(name string, term Term) *Output {
	if term == nil {
		panic("output requires a term")
	}
	//
	return &Output{name: name, term: term}
}

// Name returns the output name.
func (p *Output) Name() string { return p.name }

// Term returns the term producing the output value.
func (p *Output) Term() Term { return p.term }

// Depth implementation for the Term interface.
func (p *Output) Depth() int {
	return p.getDepth(func() int { return 1 + p.term.Depth() })
}

// Key implementation for the Term interface.
func (p *Output) Key() string {
	return p.getKey(func() string {
		return fmt.Sprintf("%s[%s]", p.name, p.term.Key())
	})
}

// Fold implementation for the Term interface.
func (p *Output) Fold() util.Option[float64] {
	return util.None[float64]()
}

// ============================================================================
// UnaryFunction
// ============================================================================

// UnaryFunction is a term applying a unary host function to an argument.
type UnaryFunction struct {
	cache
	function *symbols.Function
	argument Term
}

// NewUnaryFunction constructs a new function application term.
func NewUnaryFunction(function *symbols.Function, argument Term) *UnaryFunction {
	if function == nil || argument == nil {
		panic("function application requires a function and an argument")
	}
	//
	return &UnaryFunction{function: function, argument: argument}
}

// Function returns the function symbol being applied.
func (p *UnaryFunction) Function() *symbols.Function { return p.function }

// Argument returns the argument term.
func (p *UnaryFunction) Argument() Term { return p.argument }

// Depth implementation for the Term interface.
func (p *UnaryFunction) Depth() int {
	return p.getDepth(func() int { return 1 + p.argument.Depth() })
}

// Key implementation for the Term interface.  The function is fingerprinted
// by its code pointer, such that differently named symbols wrapping the same
// host function coalesce.
func (p *UnaryFunction) Key() string {
	return p.getKey(func() string {
		return fmt.Sprintf("%#x(%s)", funcPointer(p.function.Fn()), p.argument.Key())
	})
}

// Fold implementation for the Term interface.
func (p *UnaryFunction) Fold() util.Option[float64] {
	if c := p.argument.Fold(); c.HasValue() {
		return util.Some(p.function.Fn()(c.Unwrap()))
	}
	//
	return util.None[float64]()
}
