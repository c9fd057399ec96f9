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
package lex

import (
	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// Token associates a piece of information with a given range of characters in
// the string being scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule is simply a rule for associating groups of characters with a given
// tag.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Scan tokenises a given input in one go against a set of rules.  At every
// position the first matching rule wins and the scan advances past its token.
// Scanning terminates on a zero-width token (i.e. an Eof rule matching the
// end of the input), or as soon as no rule matches; with a catch-all rule in
// place the scan therefore always consumes the whole input.
func Scan[T any](input []T, rules ...LexRule[T]) []Token {
	var (
		tokens []Token
		index  int
	)
	//
	for index <= len(input) {
		token, ok := match(input, index, rules)
		if !ok {
			// No rule matches the remainder.
			break
		}
		//
		tokens = append(tokens, token)
		//
		if token.Span.End() == index {
			// Zero-width token, i.e. the end of the input.
			break
		}
		//
		index = token.Span.End()
	}
	//
	return tokens
}

// match looks for the first rule accepting a prefix of the remaining input.
func match[T any](input []T, index int, rules []LexRule[T]) (Token, bool) {
	for _, rule := range rules {
		if n := rule.scanner(input[index:]); n > 0 {
			// An Eof scanner reports a width of one beyond the input; clamp
			// its span back onto the input.
			end := min(len(input), index+int(n))
			//
			return Token{rule.tag, source.NewSpan(index, end)}, true
		}
	}
	//
	return Token{}, false
}
