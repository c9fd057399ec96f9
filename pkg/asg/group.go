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
	"slices"
	"strings"

	"github.com/rgb-xyz/Sixpack/pkg/util"
)

// GroupTerm is implemented by the two abelian group operations (Addition and
// Multiplication).  A group operation carries an identity element, an
// optional null element, a constant term, and two lists of children: the
// positive terms are combined with the group operation itself, the negative
// terms with its inverse.  A constant equal to the identity is semantically
// absent.
type GroupTerm interface {
	Term
	// ConstantTerm returns the constant term of this operation.
	ConstantTerm() *Constant
	// PositiveTerms returns the children combined with the operation itself.
	PositiveTerms() []Term
	// NegativeTerms returns the children combined with the inverse operation.
	NegativeTerms() []Term
	// AddPositiveTerm appends a positive child.  Panics if the term is frozen.
	AddPositiveTerm(Term)
	// AddNegativeTerm appends a negative child.  Panics if the term is frozen.
	AddNegativeTerm(Term)
	// Identity returns the identity element of the operation (0 or 1).
	Identity() float64
	// NullElement returns the null element of the operation, if it has one
	// (0 for multiplication).
	NullElement() util.Option[float64]
	// Apply combines two values with the group operation.
	Apply(left float64, right float64) float64
	// ApplyInverse combines two values with the inverse operation.
	ApplyInverse(left float64, right float64) float64
}

// group holds the state shared by the two group operations.  The identity,
// null-element and sign metadata is plain data rather than behaviour, such
// that the grouping and reduction rewrites can treat both operations
// uniformly.
type group struct {
	cache
	identity float64
	null     util.Option[float64]
	constant *Constant
	positive []Term
	negative []Term
}

func newGroup(identity float64, null util.Option[float64], constant Term) group {
	c, ok := constant.(*Constant)
	if !ok {
		c = NewConstant(identity)
	}
	//
	return group{identity: identity, null: null, constant: c}
}

// ConstantTerm implementation for the GroupTerm interface.
func (p *group) ConstantTerm() *Constant { return p.constant }

// PositiveTerms implementation for the GroupTerm interface.
func (p *group) PositiveTerms() []Term { return p.positive }

// NegativeTerms implementation for the GroupTerm interface.
func (p *group) NegativeTerms() []Term { return p.negative }

// Identity implementation for the GroupTerm interface.
func (p *group) Identity() float64 { return p.identity }

// NullElement implementation for the GroupTerm interface.
func (p *group) NullElement() util.Option[float64] { return p.null }

// AddPositiveTerm implementation for the GroupTerm interface.
func (p *group) AddPositiveTerm(term Term) {
	if term == nil {
		panic("group operation requires a term")
	}
	//
	p.checkModifiable()
	p.positive = append(p.positive, term)
}

// AddNegativeTerm implementation for the GroupTerm interface.
func (p *group) AddNegativeTerm(term Term) {
	if term == nil {
		panic("group operation requires a term")
	}
	//
	p.checkModifiable()
	p.negative = append(p.negative, term)
}

// Fold implementation for the Term interface.  A group operation without
// children folds to its constant; one whose constant equals the null element
// folds to the null element; anything else is unknown.
func (p *group) Fold() util.Option[float64] {
	if len(p.positive) == 0 && len(p.negative) == 0 {
		return util.Some(p.constant.Value())
	} else if p.null.HasValue() && p.constant.Value() == p.null.Unwrap() {
		return p.null
	}
	//
	return util.None[float64]()
}

// Depth implementation for the Term interface.  The constant term counts as a
// child, hence a group operation always has depth of at least one.
func (p *group) Depth() int {
	return p.getDepth(func() int {
		depth := p.constant.Depth()
		for _, term := range p.positive {
			depth = max(depth, term.Depth())
		}
		for _, term := range p.negative {
			depth = max(depth, term.Depth())
		}
		//
		return 1 + depth
	})
}

// keyOf fingerprints the group operation: the constant key, followed by the
// sorted positive children joined with the positive sign, followed by the
// sorted negative children joined with the negative sign.  Sorting makes the
// key invariant under commutation.
func (p *group) keyOf(positiveSign string, negativeSign string) string {
	sortedKeys := func(terms []Term) []string {
		keys := make([]string, len(terms))
		for i, term := range terms {
			keys[i] = term.Key()
		}
		//
		slices.Sort(keys)
		//
		return keys
	}
	//
	var builder strings.Builder
	//
	builder.WriteString(p.constant.Key())
	//
	for _, key := range sortedKeys(p.positive) {
		builder.WriteString(positiveSign)
		builder.WriteString("(")
		builder.WriteString(key)
		builder.WriteString(")")
	}
	//
	for _, key := range sortedKeys(p.negative) {
		builder.WriteString(negativeSign)
		builder.WriteString("(")
		builder.WriteString(key)
		builder.WriteString(")")
	}
	//
	return builder.String()
}

// ============================================================================
// Addition
// ============================================================================

// Addition is the group operation with identity 0, combining its positive
// children with + and its negative children with -.  It has no null element.
type Addition struct {
	group
}

// NewAddition constructs a new addition.  The given constant term may be nil,
// in which case the identity is used.
func NewAddition(constant Term) *Addition {
	return &Addition{newGroup(0.0, util.None[float64](), constant)}
}

// Apply implementation for the GroupTerm interface.
func (p *Addition) Apply(left float64, right float64) float64 { return left + right }

// ApplyInverse implementation for the GroupTerm interface.
func (p *Addition) ApplyInverse(left float64, right float64) float64 { return left - right }

// Key implementation for the Term interface.
func (p *Addition) Key() string {
	return p.getKey(func() string { return p.keyOf("+", "-") })
}

// ============================================================================
// Multiplication
// ============================================================================

// Multiplication is the group operation with identity 1 and null element 0,
// combining its positive children with * and its negative children with /.
type Multiplication struct {
	group
}

// NewMultiplication constructs a new multiplication.  The given constant term
// may be nil, in which case the identity is used.
func NewMultiplication(constant Term) *Multiplication {
	return &Multiplication{newGroup(1.0, util.Some(0.0), constant)}
}

// Apply implementation for the GroupTerm interface.
func (p *Multiplication) Apply(left float64, right float64) float64 { return left * right }

// ApplyInverse implementation for the GroupTerm interface.
func (p *Multiplication) ApplyInverse(left float64, right float64) float64 { return left / right }

// Key implementation for the Term interface.
func (p *Multiplication) Key() string {
	return p.getKey(func() string { return p.keyOf("*", "/") })
}

// newGroupLike constructs a fresh, empty group operation of the same kind as
// a given one, holding a given constant term.
func newGroupLike(op GroupTerm, constant Term) GroupTerm {
	switch op.(type) {
	case *Addition:
		return NewAddition(constant)
	case *Multiplication:
		return NewMultiplication(constant)
	default:
		panic("unknown group operation")
	}
}

// sameKind checks whether a given term is a group operation of the same kind
// as a given one.
func sameKind(op GroupTerm, term Term) (GroupTerm, bool) {
	switch op.(type) {
	case *Addition:
		if t, ok := term.(*Addition); ok {
			return t, true
		}
	case *Multiplication:
		if t, ok := term.(*Multiplication); ok {
			return t, true
		}
	}
	//
	return nil, false
}
