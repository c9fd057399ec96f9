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
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Notation selects how an expression is rendered back into text.
type Notation uint8

const (
	// Infix is the infix (algebraic) notation.
	Infix Notation = iota
	// Prefix is the prefix (Polish) notation.
	Prefix
	// Postfix is the postfix (reverse Polish) notation.
	Postfix
)

// Stringify renders a syntax tree back into text using a given notation.  The
// infix rendering is fully parenthesised, such that parsing it again yields a
// structurally identical tree.
func Stringify(root Node, notation Notation) string {
	var builder strings.Builder
	//
	stringify(&builder, root, notation)
	//
	return builder.String()
}

func stringify(builder *strings.Builder, node Node, notation Notation) {
	switch t := node.(type) {
	case *Literal:
		builder.WriteString(strconv.FormatFloat(t.Value(), 'g', -1, 64))
	case *Value:
		builder.WriteString(t.Symbol().Name())
	case *UnaryFunction:
		stringifyOperator(builder, t.Symbol().Name(), notation, t.Argument())
	case *UnaryOperator:
		stringifyOperator(builder, t.Kind().String(), notation, t.Operand())
	case *BinaryOperator:
		stringifyOperator(builder, t.Kind().String(), notation, t.Left(), t.Right())
	default:
		panic("unknown syntax tree node")
	}
}

func stringifyOperator(builder *strings.Builder, op string, notation Notation, operands ...Node) {
	switch notation {
	case Infix:
		switch len(operands) {
		case 1:
			// Distinguish function calls from unary operators.
			if op == "+" || op == "-" {
				builder.WriteString(op)
				stringifyChild(builder, operands[0], notation)
			} else {
				builder.WriteString(op)
				builder.WriteString("(")
				stringify(builder, operands[0], notation)
				builder.WriteString(")")
			}
		case 2:
			stringifyChild(builder, operands[0], notation)
			builder.WriteString(op)
			stringifyChild(builder, operands[1], notation)
		}
	case Prefix:
		builder.WriteString(op)
		for _, operand := range operands {
			builder.WriteString(" ")
			stringify(builder, operand, notation)
		}
	case Postfix:
		for _, operand := range operands {
			stringify(builder, operand, notation)
			builder.WriteString(" ")
		}
		builder.WriteString(op)
	}
}

// Parenthesise composite children so that the rendering is unambiguous under
// any precedence.
func stringifyChild(builder *strings.Builder, node Node, notation Notation) {
	if len(node.Children()) == 0 {
		stringify(builder, node, notation)
		return
	}
	//
	builder.WriteString("(")
	stringify(builder, node, notation)
	builder.WriteString(")")
}

// DumpTree writes an indented dump of the syntax tree of a given expression,
// one node per line, together with the source text each node covers.
func DumpTree(w io.Writer, expr Expression) {
	if !expr.IsValid() {
		fmt.Fprintf(w, "error: %s\n", expr.Err().Error())
		return
	}
	//
	dumpNode(w, expr, expr.Root(), 0)
}

func dumpNode(w io.Writer, expr Expression, node Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	inner := expr.Text(node.InnerSpan())
	//
	fmt.Fprintf(w, "%s%s '%s'\n", prefix, nodeName(node), inner)
	//
	for _, child := range node.Children() {
		dumpNode(w, expr, child, indent+1)
	}
}

func nodeName(node Node) string {
	switch node.(type) {
	case *Literal:
		return "Literal"
	case *Value:
		return "Value"
	case *UnaryFunction:
		return "UnaryFunction"
	case *UnaryOperator:
		return "UnaryOperator"
	case *BinaryOperator:
		return "BinaryOperator"
	default:
		return "Node"
	}
}
