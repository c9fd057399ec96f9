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
	"math"

	"github.com/rgb-xyz/Sixpack/pkg/util"
)

// Exponentiation is the term raising a base to an exponent.  Integer constant
// exponents are expanded away by the reduction rewrite; only the general case
// survives to code generation (as a POWER instruction).
type Exponentiation struct {
	cache
	base     Term
	exponent Term
}

// NewExponentiation constructs a new exponentiation term.
func NewExponentiation(base Term, exponent Term) *Exponentiation {
	if base == nil || exponent == nil {
		panic("exponentiation requires a base and an exponent")
	}
	//
	return &Exponentiation{base: base, exponent: exponent}
}

// Base returns the base term.
func (p *Exponentiation) Base() Term { return p.base }

// Exponent returns the exponent term.
func (p *Exponentiation) Exponent() Term { return p.exponent }

// Depth implementation for the Term interface.
func (p *Exponentiation) Depth() int {
	return p.getDepth(func() int {
		return 1 + max(p.base.Depth(), p.exponent.Depth())
	})
}

// Key implementation for the Term interface.
func (p *Exponentiation) Key() string {
	return p.getKey(func() string {
		return fmt.Sprintf("(%s)^(%s)", p.base.Key(), p.exponent.Key())
	})
}

// Fold implementation for the Term interface.  A constant zero base folds to
// one; otherwise both operands must be constant.
func (p *Exponentiation) Fold() util.Option[float64] {
	if base := p.base.Fold(); base.HasValue() {
		if base.Unwrap() == 0.0 {
			return util.Some(1.0)
		}
		//
		if exponent := p.exponent.Fold(); exponent.HasValue() {
			return util.Some(math.Pow(base.Unwrap(), exponent.Unwrap()))
		}
	}
	//
	return util.None[float64]()
}

// Squaring is the term multiplying a base with itself.  It is only ever
// produced by rewriting (integer exponent expansion), never by the graph
// builder.
type Squaring struct {
	cache
	base Term
}

// NewSquaring constructs a new squaring term.
func NewSquaring(base Term) *Squaring {
	if base == nil {
		panic("squaring requires a base")
	}
	//
	return &Squaring{base: base}
}

// Base returns the base term.
func (p *Squaring) Base() Term { return p.base }

// Depth implementation for the Term interface.
func (p *Squaring) Depth() int {
	return p.getDepth(func() int { return 1 + p.base.Depth() })
}

// Key implementation for the Term interface.
func (p *Squaring) Key() string {
	return p.getKey(func() string {
		return fmt.Sprintf("(%s)^2", p.base.Key())
	})
}

// Fold implementation for the Term interface.
func (p *Squaring) Fold() util.Option[float64] {
	if base := p.base.Fold(); base.HasValue() {
		return util.Some(base.Unwrap() * base.Unwrap())
	}
	//
	return util.None[float64]()
}
