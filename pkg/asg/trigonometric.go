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
	"math"
)

var (
	sinPointer = funcPointer(math.Sin)
	cosPointer = funcPointer(math.Cos)
)

// TrigonometricIdentities is an optional rewrite layer which exploits
// sin(x)^2 + cos(x)^2 = 1: once one of the squared pair has been emitted for
// a given argument, the sibling is rewritten as its complement (1 - other).
//
// The caches are keyed by argument term identity, so the layer is effective
// on graphs whose shared arguments have already been merged (i.e. in a second
// pipeline pass over an already rewritten graph).
type TrigonometricIdentities struct {
	squaredSines   map[Term]Term
	squaredCosines map[Term]Term
}

// NewTrigonometricIdentities constructs the layer with empty caches.
func NewTrigonometricIdentities() *TrigonometricIdentities {
	return &TrigonometricIdentities{
		squaredSines:   make(map[Term]Term),
		squaredCosines: make(map[Term]Term),
	}
}

// Rewrite implementation for the Layer interface.
func (p *TrigonometricIdentities) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	if squaring, ok := term.(*Squaring); ok {
		if function, ok := squaring.Base().(*UnaryFunction); ok {
			switch funcPointer(function.Function().Fn()) {
			case sinPointer:
				return p.rewriteSquared(next, squaring, function.Argument(), p.squaredSines, p.squaredCosines)
			case cosPointer:
				return p.rewriteSquared(next, squaring, function.Argument(), p.squaredCosines, p.squaredSines)
			}
		}
	}
	//
	return next(term)
}

// Coalesce implementation for the Layer interface.  This layer coalesces
// nothing.
func (p *TrigonometricIdentities) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	return next(term)
}

// If the sibling identity for the same argument was already emitted, rewrite
// the current squared form as 1 minus the sibling; otherwise emit and cache
// it.
func (p *TrigonometricIdentities) rewriteSquared(next Rewriter, term *Squaring, argument Term,
	own map[Term]Term, sibling map[Term]Term) Term {
	if cached, ok := sibling[argument]; ok {
		difference := NewAddition(NewConstant(1.0))
		difference.AddNegativeTerm(cached)
		//
		return next(difference)
	}
	//
	transformed := next(term)
	own[argument] = transformed
	//
	return transformed
}
