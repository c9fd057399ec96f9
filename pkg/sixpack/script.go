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
	"slices"

	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// scriptParser parses the line-oriented script language.  Each line is one
// of:
//
//	const <name> = <number>
//	param <name> [= <number>]
//	input <name>
//	output <name> = <expression>
//	<name> = <expression>
//
// A `#` introduces a comment running to the end of the line.  Declarations
// are applied to the compiler as they are parsed.
type scriptParser struct {
	compiler *Compiler
}

// parseScript parses a complete script, line by line.  Syntax errors are
// mapped from line-local to script-global positions.
func (p *scriptParser) parseScript(input string) error {
	var (
		contents = []rune(input)
		start    = 0
	)
	//
	for start <= len(contents) {
		end := start + slices.Index(contents[start:], '\n')
		if end < start {
			end = len(contents)
		}
		//
		if err := p.parseLine(string(contents[start:end])); err != nil {
			if syntax, ok := err.(*source.SyntaxError); ok {
				// Map the error position back into the whole script.
				var (
					srcfile = source.NewSourceFile("", input)
					span    = syntax.Span()
				)
				//
				return srcfile.SyntaxError(span.Shift(start), syntax.Message())
			}
			//
			return err
		}
		//
		start = end + 1
	}
	//
	return nil
}

// parseLine parses a single script line.
func (p *scriptParser) parseLine(line string) error {
	// Truncate line comments.
	if comment := slices.Index([]rune(line), '#'); comment >= 0 {
		line = string([]rune(line)[:comment])
	}
	//
	var (
		srcfile = source.NewSourceFile("", line)
		parser  = newParser(srcfile)
	)
	//
	if !parser.accept(IDENTIFIER) {
		// Blank lines are fine; anything else is not.
		return orNil(parser.expect(END_OF, ""))
	}
	//
	switch parser.lastText() {
	case "const":
		return p.parseConstant(parser)
	case "param":
		return p.parseParameter(parser)
	case "input":
		return p.parseInput(parser)
	case "output":
		if err := parser.expect(IDENTIFIER, ""); err != nil {
			return err
		}
		//
		return p.parseExpression(parser, Public)
	default:
		return p.parseExpression(parser, Symbolic)
	}
}

func (p *scriptParser) parseConstant(parser *parser) error {
	if err := parser.expect(IDENTIFIER, ""); err != nil {
		return err
	}
	//
	name := parser.lastText()
	//
	if err := parser.expect(EQUALS, ""); err != nil {
		return err
	} else if err := parser.expect(NUMBER, ""); err != nil {
		return err
	}
	//
	if err := p.compiler.AddConstant(name, parser.lastNumber()); err != nil {
		return err
	}
	//
	return orNil(parser.expect(END_OF, ""))
}

func (p *scriptParser) parseParameter(parser *parser) error {
	if err := parser.expect(IDENTIFIER, ""); err != nil {
		return err
	}
	//
	var (
		name  = parser.lastText()
		value = 0.0
	)
	//
	if parser.accept(EQUALS) {
		if err := parser.expect(NUMBER, ""); err != nil {
			return err
		}
		//
		value = parser.lastNumber()
	}
	//
	if err := p.compiler.AddParameter(name, value); err != nil {
		return err
	}
	//
	return orNil(parser.expect(END_OF, ""))
}

func (p *scriptParser) parseInput(parser *parser) error {
	if err := parser.expect(IDENTIFIER, ""); err != nil {
		return err
	}
	//
	if err := p.compiler.AddVariable(parser.lastText()); err != nil {
		return err
	}
	//
	return orNil(parser.expect(END_OF, ""))
}

// The rest of the line after "=" is the expression text, consumed verbatim.
func (p *scriptParser) parseExpression(parser *parser, visibility Visibility) error {
	name := parser.lastText()
	//
	if err := parser.expect(EQUALS, ""); err != nil {
		return err
	}
	//
	var (
		offset   = parser.last.Span.End()
		contents = parser.srcfile.Contents()
		text     = string(contents[offset:])
	)
	//
	expression, err := p.compiler.AddExpression(name, text, visibility)
	if err != nil {
		return err
	}
	//
	if !expression.IsValid() {
		// Map the error position back into the line.
		span := expression.Err().Span()
		return parser.srcfile.SyntaxError(span.Shift(offset), expression.Err().Message())
	}
	//
	return nil
}

// orNil turns a typed nil syntax error into an untyped nil error.
func orNil(err *source.SyntaxError) error {
	if err != nil {
		return err
	}
	//
	return nil
}
