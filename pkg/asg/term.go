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
	"reflect"

	"github.com/rgb-xyz/Sixpack/pkg/ast"
	"github.com/rgb-xyz/Sixpack/pkg/util"
)

// Term is a node of the semantic graph.  Terms form a DAG: sharing of
// subterms is encouraged, and a shared term must never be mutated.  The
// concrete kinds are Constant, Input, Output, UnaryFunction, Addition,
// Multiplication, Exponentiation, Squaring and Sequence.
//
// Two derived attributes are computed lazily and cached on first read:
//
//   - Depth is the longest path from the term to its deepest leaf (zero for
//     Constant and Input), used as a topological layering key by the code
//     generator.
//
//   - Key is a canonical fingerprint which is equal exactly when two terms
//     are structurally equivalent modulo the commutativity of the group
//     operations.
//
// Once either attribute has been observed the term is frozen: mutators of
// Sequence and of the group operations panic from that point on.
type Term interface {
	// Depth returns the longest path from this term to its deepest leaf.
	Depth() int
	// Key returns the canonical structural fingerprint of this term.
	Key() string
	// Fold returns the constant value this term evaluates to, when that can
	// be determined without runtime inputs.
	Fold() util.Option[float64]
	// Source returns the syntax tree node this term originated from, if any.
	// The relation is diagnostic only and may be copied forward by rewrites.
	Source() ast.Node
	// SetSource assigns the originating syntax tree node.
	SetSource(ast.Node)
}

// cache holds the lazily computed term attributes together with the source
// back-reference.  It is embedded by every concrete term kind.
type cache struct {
	depth    int
	key      string
	hasDepth bool
	hasKey   bool
	source   ast.Node
}

// Source implementation for the Term interface.
func (p *cache) Source() ast.Node { return p.source }

// SetSource implementation for the Term interface.
func (p *cache) SetSource(node ast.Node) { p.source = node }

// getDepth returns the cached depth, computing it on first read.
func (p *cache) getDepth(compute func() int) int {
	if !p.hasDepth {
		p.depth = compute()
		p.hasDepth = true
	}
	//
	return p.depth
}

// getKey returns the cached key, computing it on first read.
func (p *cache) getKey(compute func() string) string {
	if !p.hasKey {
		p.key = compute()
		p.hasKey = true
	}
	//
	return p.key
}

// canBeModified indicates whether neither derived attribute has been observed
// yet, and hence whether the term may still be mutated.
func (p *cache) canBeModified() bool {
	return !p.hasDepth && !p.hasKey
}

// checkModifiable panics unless the term may still be mutated.
func (p *cache) checkModifiable() {
	if !p.canBeModified() {
		panic("term is frozen (depth or key already observed)")
	}
}

// funcPointer determines the code pointer of a given host function.  This is
// the identity under which functions are compared and fingerprinted: two
// function symbols wrapping the same host function are the same function.
func funcPointer(fn func(float64) float64) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
