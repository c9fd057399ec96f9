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
package symbols

import (
	"fmt"

	"github.com/rgb-xyz/Sixpack/pkg/ast"
)

// Symbol is a named entity which can be referenced from an expression.
type Symbol interface {
	// Name returns the name under which this symbol was declared.
	Name() string
}

// symbol provides the name bookkeeping shared by all symbol kinds.
type symbol struct {
	name string
}

// Name implementation for the Symbol interface.
func (p *symbol) Name() string { return p.name }

// Constant is a named value fixed at declaration time.
type Constant struct {
	symbol
	value float64
}

// NewConstant constructs a new constant symbol.
func NewConstant(name string, value float64) *Constant {
	return &Constant{symbol{name}, value}
}

// Value returns the value of this constant.
func (p *Constant) Value() float64 { return p.value }

// Parameter is a named value which may be changed between compilations, but is
// frozen into the program at compile time.
type Parameter struct {
	symbol
	value float64
}

// NewParameter constructs a new parameter symbol.
func NewParameter(name string, value float64) *Parameter {
	return &Parameter{symbol{name}, value}
}

// Value returns the current value of this parameter.
func (p *Parameter) Value() float64 { return p.value }

// SetValue assigns a new value to this parameter.  The assignment only affects
// programs compiled afterwards.
func (p *Parameter) SetValue(value float64) { p.value = value }

// Variable is a named runtime input of the compiled program.
type Variable struct {
	symbol
}

// NewVariable constructs a new variable symbol.
func NewVariable(name string) *Variable {
	return &Variable{symbol{name}}
}

// Expression is a named subexpression.  References to it are expanded in place
// (macro substitution) when the term graph is built.
type Expression struct {
	symbol
	expr ast.Expression
}

// NewExpression constructs a new named-expression symbol.
func NewExpression(name string, expr ast.Expression) *Expression {
	return &Expression{symbol{name}, expr}
}

// Expr returns the parsed expression held by this symbol.
func (p *Expression) Expr() ast.Expression { return p.expr }

// Function is a named unary host function.  Two function symbols are
// considered the same function exactly when they wrap the same host function
// (code pointer identity), regardless of their names.
type Function struct {
	symbol
	fn func(float64) float64
}

// NewFunction constructs a new function symbol.
func NewFunction(name string, fn func(float64) float64) *Function {
	if fn == nil {
		panic("function symbol requires a host function")
	}
	//
	return &Function{symbol{name}, fn}
}

// Fn returns the host function wrapped by this symbol.
func (p *Function) Fn() func(float64) float64 { return p.fn }

// ============================================================================
// Lexicon
// ============================================================================

// Lexicon is the symbol table: a mapping from names to symbols with
// unique-name insertion.
type Lexicon struct {
	symbols map[string]Symbol
}

// NewLexicon constructs a new (initially empty) lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{make(map[string]Symbol)}
}

// Add inserts a given symbol into the lexicon, failing if another symbol with
// the same name is already present, or if the name is not a valid identifier.
func (p *Lexicon) Add(sym Symbol) error {
	name := sym.Name()
	//
	if !IsValidName(name) {
		return fmt.Errorf("Invalid symbol name '%s'", name)
	} else if _, ok := p.symbols[name]; ok {
		return fmt.Errorf("Duplicate symbol '%s'", name)
	}
	//
	p.symbols[name] = sym
	//
	return nil
}

// Find looks up a symbol matching the given name, returning nil if there is
// none.
func (p *Lexicon) Find(name string) Symbol {
	return p.symbols[name]
}

// Symbols returns the underlying name-to-symbol mapping.
func (p *Lexicon) Symbols() map[string]Symbol {
	return p.symbols
}

// IsValidName checks whether a given string is a valid symbol name, i.e. a
// non-empty identifier.
func IsValidName(name string) bool {
	for i, c := range name {
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			// letters anywhere
		case i > 0 && c >= '0' && c <= '9':
			// digits after the first character
		default:
			return false
		}
	}
	//
	return len(name) > 0
}
