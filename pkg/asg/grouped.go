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

// Grouped is the rewrite layer which flattens associative-commutative
// structure.  Nested sequences are spliced into a single flat sequence, and
// nested occurrences of the same group operation are absorbed into their
// parent: (a+2)-(c-(3+b)) becomes 5+a+b-c, and (a*2)/(c/(3*b)) becomes
// 6*a*b/c.  Constant children are folded into the running constant.
type Grouped struct{}

// Rewrite implementation for the Layer interface.
func (p *Grouped) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	switch t := term.(type) {
	case *Sequence:
		return p.rewriteSequence(tx, next, t)
	case *Addition:
		return groupTerms(tx, next, t)
	case *Multiplication:
		return groupTerms(tx, next, t)
	default:
		return next(term)
	}
}

// Coalesce implementation for the Layer interface.  This layer coalesces
// nothing.
func (p *Grouped) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	return next(term)
}

// Expand nested sequences: (a,b),(c,d) -> a,b,c,d
func (p *Grouped) rewriteSequence(tx *Transform, next Rewriter, term *Sequence) Term {
	flattened := NewSequence()
	//
	for _, child := range term.Terms() {
		transformed := tx.Transform(child)
		if sequence, ok := transformed.(*Sequence); ok {
			for _, nested := range sequence.Terms() {
				flattened.AddTerm(nested)
			}
		} else {
			flattened.AddTerm(transformed)
		}
	}
	//
	return next(flattened)
}

// groupTerms is shared with the reduction layer, which regroups every
// operation it has rebuilt so that the products of term fusion are spliced
// into their parent.
func groupTerms(tx *Transform, next Rewriter, op GroupTerm) Term {
	var (
		constant = op.ConstantTerm().Value()
		positive []Term
		negative []Term
	)
	// Children on the positive side keep their signs.
	for _, child := range op.PositiveTerms() {
		transformed := tx.Transform(child)
		if c, ok := transformed.(*Constant); ok {
			constant = op.Apply(constant, c.Value())
		} else if sibling, ok := sameKind(op, transformed); ok {
			constant = op.Apply(constant, sibling.ConstantTerm().Value())
			positive = append(positive, sibling.PositiveTerms()...)
			negative = append(negative, sibling.NegativeTerms()...)
		} else {
			positive = append(positive, transformed)
		}
	}
	// Children on the negative side swap their signs when spliced.
	for _, child := range op.NegativeTerms() {
		transformed := tx.Transform(child)
		if c, ok := transformed.(*Constant); ok {
			constant = op.ApplyInverse(constant, c.Value())
		} else if sibling, ok := sameKind(op, transformed); ok {
			constant = op.ApplyInverse(constant, sibling.ConstantTerm().Value())
			positive = append(positive, sibling.NegativeTerms()...)
			negative = append(negative, sibling.PositiveTerms()...)
		} else {
			negative = append(negative, transformed)
		}
	}
	//
	grouped := newGroupLike(op, tx.Transform(NewConstant(constant)))
	for _, term := range positive {
		grouped.AddPositiveTerm(term)
	}
	for _, term := range negative {
		grouped.AddNegativeTerm(term)
	}
	//
	return next(grouped)
}
