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
	"strconv"

	"github.com/rgb-xyz/Sixpack/pkg/ast"
	"github.com/rgb-xyz/Sixpack/pkg/symbols"
	"github.com/rgb-xyz/Sixpack/pkg/util/source"
	"github.com/rgb-xyz/Sixpack/pkg/util/source/lex"
)

// ============================================================================
// Lexer
// ============================================================================

// END_OF signals the end of the input.
const END_OF uint = 0

// WHITESPACE signals whitespace.
const WHITESPACE uint = 1

// NUMBER signals a decimal literal, including an optional exponent.
const NUMBER uint = 2

// IDENTIFIER signals an identifier.
const IDENTIFIER uint = 3

// EQUALS signals "=".
const EQUALS uint = 4

// PLUS signals "+".
const PLUS uint = 5

// MINUS signals "-".
const MINUS uint = 6

// ASTERISK signals "*".
const ASTERISK uint = 7

// SLASH signals "/".
const SLASH uint = 8

// CARET signals "^".
const CARET uint = 9

// LPAREN signals "(".
const LPAREN uint = 10

// RPAREN signals ")".
const RPAREN uint = 11

// LBRACKET signals "[".
const LBRACKET uint = 12

// RBRACKET signals "]".
const RBRACKET uint = 13

// UNKNOWN signals any single character matched by no other rule.
const UNKNOWN uint = 14

// Rule for describing whitespace.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing digit runs.
var digits lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

// Rule for describing the fractional part of a number ("." digits).
var fraction lex.Scanner[rune] = lex.Sequence(lex.Unit('.'), digits)

// Rule for describing the exponent part of a number ("e"/"E", an optional
// sign, then at least one digit).
var exponent lex.Scanner[rune] = func(items []rune) uint {
	n := lex.Or(lex.Unit('e'), lex.Unit('E'))(items)
	if n == 0 {
		return 0
	}
	//
	if m := lex.Or(lex.Unit('+'), lex.Unit('-'))(items[n:]); m > 0 {
		n += m
	}
	//
	m := digits(items[n:])
	if m == 0 {
		return 0
	}
	//
	return n + m
}

// Rule for describing numbers.  The fraction and exponent parts are optional,
// hence "1", "1.5" and "2.5e-3" all match, whilst "1.0e(" matches only "1.0".
var number lex.Scanner[rune] = func(items []rune) uint {
	n := digits(items)
	if n == 0 {
		return 0
	}
	//
	if m := fraction(items[n:]); m > 0 {
		n += m
	}
	//
	if m := exponent(items[n:]); m > 0 {
		n += m
	}
	//
	return n
}

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers.
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('+'), PLUS),
	lex.Rule(lex.Unit('-'), MINUS),
	lex.Rule(lex.Unit('*'), ASTERISK),
	lex.Rule(lex.Unit('/'), SLASH),
	lex.Rule(lex.Unit('^'), CARET),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Unit('['), LBRACKET),
	lex.Rule(lex.Unit(']'), RBRACKET),
	lex.Rule(lex.Eof[rune](), END_OF),
	lex.Rule(lex.Any[rune](), UNKNOWN),
}

// ============================================================================
// Parser
// ============================================================================

// ParseExpression parses a given expression text against a lexicon.  Parse
// failures are not reported eagerly: they are attached to the returned
// expression and surface when it is walked.
func ParseExpression(lexicon *symbols.Lexicon, text string) ast.Expression {
	srcfile := source.NewSourceFile("", text)
	//
	root, err := newParser(srcfile).parseWhole(lexicon)
	if err != nil {
		return ast.NewExpression(srcfile, nil, err)
	}
	//
	return ast.NewExpression(srcfile, root, nil)
}

// parser is a recursive-descent parser over the token stream of a single
// expression or script line.
type parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Most recently accepted token
	last lex.Token
}

func newParser(srcfile *source.File) *parser {
	var tokens []lex.Token
	// Remove any whitespace
	for _, token := range lex.Scan(srcfile.Contents(), rules...) {
		if token.Kind != WHITESPACE {
			tokens = append(tokens, token)
		}
	}
	//
	return &parser{srcfile: srcfile, tokens: tokens}
}

// lookahead returns the next token without advancing.
func (p *parser) lookahead() lex.Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	// Lexing always terminates with an END_OF token, hence this is
	// unreachable for well-formed token streams.
	end := len(p.srcfile.Contents())
	//
	return lex.Token{Kind: END_OF, Span: source.NewSpan(end, end)}
}

// accept advances past the next token if it has a given kind.
func (p *parser) accept(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.last = p.lookahead()
		p.index++
		//
		return true
	}
	//
	return false
}

// expect advances past the next token of a given kind, or fails with a given
// message (or a generic "unexpected token" message if none is supplied).
func (p *parser) expect(kind uint, message string) *source.SyntaxError {
	if p.accept(kind) {
		return nil
	}
	//
	if message == "" {
		message = fmt.Sprintf("Unexpected '%s'", p.text(p.lookahead()))
	}
	//
	return p.srcfile.SyntaxError(p.lookahead().Span, message)
}

// text extracts the source text of a given token.
func (p *parser) text(token lex.Token) string {
	contents := p.srcfile.Contents()
	return string(contents[token.Span.Start():token.Span.End()])
}

// lastText extracts the source text of the most recently accepted token.
func (p *parser) lastText() string {
	return p.text(p.last)
}

// lastNumber parses the most recently accepted token as a number.
func (p *parser) lastNumber() float64 {
	value, err := strconv.ParseFloat(p.lastText(), 64)
	if err != nil {
		panic(fmt.Sprintf("lexed number fails to parse: %s", err))
	}
	//
	return value
}

// parseWhole parses a complete expression, requiring the input to be fully
// consumed.
func (p *parser) parseWhole(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	root, err := p.parseL4(lexicon)
	if err != nil {
		return nil, err
	}
	//
	if err := p.expect(END_OF, ""); err != nil {
		return nil, err
	}
	//
	return root, nil
}

// finishNode assigns the source file and spans of a freshly parsed node.  The
// inner span covers the token representing the node itself, the outer span
// runs from the first token of the production to the most recently accepted
// token.
func (p *parser) finishNode(node ast.Node, start lex.Token, inner lex.Token) ast.Node {
	node.SetSourceFile(p.srcfile)
	node.SetInnerSpan(inner.Span)
	node.SetOuterSpan(source.NewSpan(start.Span.Start(), p.last.Span.End()))
	//
	return node
}

type binaryMapping struct {
	token uint
	kind  ast.BinaryOperatorKind
}

// parseBinary parses a sequence of left-associative binary operators:
// "x-y-z" is treated as "(x-y)-z".
func (p *parser) parseBinary(lexicon *symbols.Lexicon, mapping []binaryMapping,
	next func(*symbols.Lexicon) (ast.Node, *source.SyntaxError)) (ast.Node, *source.SyntaxError) {
	start := p.lookahead()
	//
	prefix, err := next(lexicon)
	if err != nil {
		return nil, err
	}
	//
	for {
		var (
			inner   = p.lookahead()
			matched = false
		)
		//
		for _, m := range mapping {
			if p.accept(m.token) {
				postfix, err := next(lexicon)
				if err != nil {
					return nil, err
				}
				//
				prefix = p.finishNode(ast.NewBinaryOperator(m.kind, prefix, postfix), start, inner)
				matched = true
				//
				break
			}
		}
		//
		if !matched {
			return prefix, nil
		}
	}
}

// L0 stage (highest priority) -- identifiers, functions and parentheses.
func (p *parser) parseL0(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	start := p.lookahead()
	//
	if p.accept(IDENTIFIER) {
		name := p.lastText()
		nameToken := p.last
		//
		switch symbol := lexicon.Find(name).(type) {
		case *symbols.Constant, *symbols.Parameter, *symbols.Variable, *symbols.Expression:
			return p.finishNode(ast.NewValue(symbol), start, nameToken), nil
		case *symbols.Function:
			if err := p.expect(LPAREN, "Expected '('"); err != nil {
				return nil, err
			}
			//
			argument, err := p.parseL4(lexicon)
			if err != nil {
				return nil, err
			}
			//
			if err := p.expect(RPAREN, "Expected ')'"); err != nil {
				return nil, err
			}
			//
			return p.finishNode(ast.NewUnaryFunction(symbol, argument), start, nameToken), nil
		default:
			return nil, p.srcfile.SyntaxError(nameToken.Span, fmt.Sprintf("Unknown symbol '%s'", name))
		}
	}
	//
	if p.accept(NUMBER) {
		return p.finishNode(ast.NewLiteral(p.lastNumber()), start, p.last), nil
	}
	// Parentheses and brackets are interchangeable.
	for _, brackets := range [][2]uint{{LPAREN, RPAREN}, {LBRACKET, RBRACKET}} {
		if p.accept(brackets[0]) {
			infix, err := p.parseL4(lexicon)
			if err != nil {
				return nil, err
			}
			//
			closer := "Expected ')'"
			if brackets[1] == RBRACKET {
				closer = "Expected ']'"
			}
			//
			if err := p.expect(brackets[1], closer); err != nil {
				return nil, err
			}
			// Extend the node over the enclosing pair.
			infix.SetOuterSpan(source.NewSpan(start.Span.Start(), p.last.Span.End()))
			//
			return infix, nil
		}
	}
	//
	if p.lookahead().Kind == END_OF {
		return nil, p.srcfile.SyntaxError(p.lookahead().Span, "Unexpected end of input")
	}
	//
	message := fmt.Sprintf("Unexpected '%s'", p.text(p.lookahead()))
	//
	return nil, p.srcfile.SyntaxError(p.lookahead().Span, message)
}

// L1 stage -- the binary `^` operator.
func (p *parser) parseL1(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	return p.parseBinary(lexicon, []binaryMapping{{CARET, ast.BinaryCaret}}, p.parseL0)
}

// L2 stage -- the unary `+` and `-` operators.
//
// Unary operators do not sequence; therefore `--x` is not a valid construct.
func (p *parser) parseL2(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	start := p.lookahead()
	//
	for _, m := range []struct {
		token uint
		kind  ast.UnaryOperatorKind
	}{{PLUS, ast.UnaryPlus}, {MINUS, ast.UnaryMinus}} {
		if p.accept(m.token) {
			operator := p.last
			//
			operand, err := p.parseL1(lexicon)
			if err != nil {
				return nil, err
			}
			//
			return p.finishNode(ast.NewUnaryOperator(m.kind, operand), start, operator), nil
		}
	}
	//
	return p.parseL1(lexicon)
}

// L3 stage -- the binary `*` and `/` operators.
func (p *parser) parseL3(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	mapping := []binaryMapping{{ASTERISK, ast.BinaryAsterisk}, {SLASH, ast.BinarySlash}}
	return p.parseBinary(lexicon, mapping, p.parseL2)
}

// L4 stage (lowest priority) -- the binary `+` and `-` operators.
func (p *parser) parseL4(lexicon *symbols.Lexicon) (ast.Node, *source.SyntaxError) {
	mapping := []binaryMapping{{PLUS, ast.BinaryPlus}, {MINUS, ast.BinaryMinus}}
	return p.parseBinary(lexicon, mapping, p.parseL3)
}
