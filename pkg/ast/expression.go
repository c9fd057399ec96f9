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
	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// Expression bundles the source text of a parsed expression with its syntax
// tree.  Parsing failures are not reported eagerly; instead the syntax error
// is retained here and surfaces when the expression is walked (typically with
// the name of the output being compiled attached).
type Expression struct {
	srcfile *source.File
	root    Node
	err     *source.SyntaxError
}

// NewExpression constructs an expression from a parse result.  Exactly one of
// root and err must be non-nil.
func NewExpression(srcfile *source.File, root Node, err *source.SyntaxError) Expression {
	if (root == nil) == (err == nil) {
		panic("expression requires either a syntax tree or an error")
	}
	//
	return Expression{srcfile, root, err}
}

// SourceFile returns the source text this expression was parsed from.
func (e Expression) SourceFile() *source.File {
	return e.srcfile
}

// Input returns the original source text of this expression.
func (e Expression) Input() string {
	return string(e.srcfile.Contents())
}

// Root returns the root node of the syntax tree, or nil if parsing failed.
func (e Expression) Root() Node {
	return e.root
}

// Err returns the syntax error which arose during parsing, or nil.
func (e Expression) Err() *source.SyntaxError {
	return e.err
}

// IsValid indicates whether this expression parsed successfully.
func (e Expression) IsValid() bool {
	return e.err == nil
}

// Text extracts the source text covered by a given span of this expression.
func (e Expression) Text(span source.Span) string {
	contents := e.srcfile.Contents()
	return string(contents[span.Start():span.End()])
}
