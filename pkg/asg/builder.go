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
	"errors"
	"fmt"

	"github.com/rgb-xyz/Sixpack/pkg/ast"
	"github.com/rgb-xyz/Sixpack/pkg/symbols"
)

// BuildGraph constructs the root of a semantic graph -- a Sequence of Output
// terms -- from the given output expressions.  Constants and parameters are
// frozen at their current values, variables become inputs, and named
// subexpressions are expanded in place.  A failure building one output wraps
// the underlying error with that output's name.
func BuildGraph(outputs []*symbols.Expression) (Term, error) {
	root := NewSequence()
	//
	for _, output := range outputs {
		term, err := buildOutput(output)
		if err != nil {
			return nil, fmt.Errorf("Output '%s': %s", output.Name(), err)
		}
		//
		root.AddTerm(term)
	}
	//
	return root, nil
}

func buildOutput(output *symbols.Expression) (Term, error) {
	term, err := buildExpression(output.Expr())
	if err != nil {
		return nil, err
	}
	//
	return NewOutput(output.Name(), term), nil
}

// A parse failure attached to the expression surfaces here, when the
// expression is walked for the first time.
func buildExpression(expr ast.Expression) (Term, error) {
	if !expr.IsValid() {
		return nil, errors.New(expr.Err().Message())
	}
	//
	return buildTerm(expr.Root())
}

func buildTerm(node ast.Node) (Term, error) {
	switch t := node.(type) {
	case *ast.Literal:
		return NewConstant(t.Value()), nil
	case *ast.Value:
		return buildValue(t)
	case *ast.UnaryFunction:
		return buildUnaryFunction(t)
	case *ast.UnaryOperator:
		return buildUnaryOperator(t)
	case *ast.BinaryOperator:
		return buildBinaryOperator(t)
	default:
		return nil, errors.New("Unhandled node category.")
	}
}

func buildValue(node *ast.Value) (Term, error) {
	var term Term
	//
	switch symbol := node.Symbol().(type) {
	case *symbols.Constant:
		term = NewConstant(symbol.Value())
	case *symbols.Parameter:
		term = NewConstant(symbol.Value())
	case *symbols.Variable:
		term = NewInput(symbol.Name())
	case *symbols.Expression:
		// Macro expansion of the named subexpression.
		var err error
		if term, err = buildExpression(symbol.Expr()); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("Unhandled value symbol type.")
	}
	//
	term.SetSource(node)
	//
	return term, nil
}

func buildUnaryFunction(node *ast.UnaryFunction) (Term, error) {
	function, ok := node.Symbol().(*symbols.Function)
	if !ok {
		return nil, errors.New("Unhandled function symbol type.")
	}
	//
	argument, err := buildTerm(node.Argument())
	if err != nil {
		return nil, err
	}
	//
	term := NewUnaryFunction(function, argument)
	term.SetSource(node)
	//
	return term, nil
}

func buildUnaryOperator(node *ast.UnaryOperator) (Term, error) {
	operand, err := buildTerm(node.Operand())
	if err != nil {
		return nil, err
	}
	//
	var term Term
	//
	switch node.Kind() {
	case ast.UnaryPlus:
		term = operand
	case ast.UnaryMinus:
		// Note: Let's represent the negation as "-1*x" rather than as "0-x".
		negation := NewMultiplication(NewConstant(-1.0))
		negation.AddPositiveTerm(operand)
		term = negation
	default:
		return nil, errors.New("Unhandled unary operator type.")
	}
	//
	term.SetSource(node)
	//
	return term, nil
}

func buildBinaryOperator(node *ast.BinaryOperator) (Term, error) {
	left, err := buildTerm(node.Left())
	if err != nil {
		return nil, err
	}
	//
	right, err := buildTerm(node.Right())
	if err != nil {
		return nil, err
	}
	//
	var term Term
	//
	switch node.Kind() {
	case ast.BinaryPlus:
		operation := NewAddition(nil)
		operation.AddPositiveTerm(left)
		operation.AddPositiveTerm(right)
		term = operation
	case ast.BinaryMinus:
		operation := NewAddition(nil)
		operation.AddPositiveTerm(left)
		operation.AddNegativeTerm(right)
		term = operation
	case ast.BinaryAsterisk:
		operation := NewMultiplication(nil)
		operation.AddPositiveTerm(left)
		operation.AddPositiveTerm(right)
		term = operation
	case ast.BinarySlash:
		operation := NewMultiplication(nil)
		operation.AddPositiveTerm(left)
		operation.AddNegativeTerm(right)
		term = operation
	case ast.BinaryCaret:
		term = NewExponentiation(left, right)
	default:
		return nil, errors.New("Unhandled binary operator type.")
	}
	//
	term.SetSource(node)
	//
	return term, nil
}
