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
)

// Reduced is the rewrite layer which simplifies group operations and expands
// integer exponents:
//
//	0+a    -> a         (identity reduction)
//	0*a    -> 0         (null element)
//	a+b-a  -> b         (term cancellation)
//	a+a+a  -> 3*a       (repeated addend fusion)
//	a*a*a  -> a^3       (repeated factor fusion)
//	x^7    -> ((x*x)*(x*x))*(x*x)*x   (exponentiation by squaring)
//
// It also pulls minus signs inward, canonicalising -K*x*(a-b) as K*x*(b-a),
// and drops repeated terms from sequences.
//
// Fusion counts the children of one group as they arrive: in (a+a)+a the
// inner pair is fused to 2*a before the outer sum splices it in, giving
// 2*a+a.
type Reduced struct{}

// Rewrite implementation for the Layer interface.
func (p *Reduced) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	switch t := term.(type) {
	case *Sequence:
		return p.rewriteSequence(tx, next, t)
	case *Addition:
		return p.reduceGroup(tx, next, t, fuseAddends)
	case *Multiplication:
		return p.rewriteMultiplication(tx, next, t)
	case *Exponentiation:
		return p.rewriteExponentiation(tx, next, t)
	default:
		return next(term)
	}
}

// Coalesce implementation for the Layer interface.  This layer coalesces
// nothing.
func (p *Reduced) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	return next(term)
}

// Fuse n identical addends into n*term.
func fuseAddends(term Term, count int) Term {
	product := NewMultiplication(NewConstant(float64(count)))
	product.AddPositiveTerm(term)
	//
	return product
}

// Fuse n identical factors into term^n.
func fuseFactors(term Term, count int) Term {
	return NewExponentiation(term, NewConstant(float64(count)))
}

// Remove duplicate terms from the sequence.
func (p *Reduced) rewriteSequence(tx *Transform, next Rewriter, term *Sequence) Term {
	var (
		deduplicated = NewSequence()
		unique       = make(map[Term]bool)
	)
	//
	for _, child := range term.Terms() {
		transformed := tx.Transform(child)
		if !unique[transformed] {
			unique[transformed] = true
			//
			deduplicated.AddTerm(transformed)
		}
	}
	//
	return next(deduplicated)
}

func (p *Reduced) reduceGroup(tx *Transform, next Rewriter, op GroupTerm, fuse func(Term, int) Term) Term {
	// Null element constant -> null element.
	if null := op.NullElement(); null.HasValue() && op.ConstantTerm().Value() == null.Unwrap() {
		return tx.Transform(op.ConstantTerm())
	}
	// Build the multiset of transformed children: positive occurrences count
	// +1, negative ones -1.  Entries with zero net multiplicity cancel out.
	multiplicities := make(map[Term]int)
	//
	for _, child := range op.PositiveTerms() {
		multiplicities[tx.Transform(child)]++
	}
	for _, child := range op.NegativeTerms() {
		multiplicities[tx.Transform(child)]--
	}
	for term, multiplicity := range multiplicities {
		if multiplicity == 0 {
			delete(multiplicities, term)
		}
	}
	// Single positive term and identity constant -> reduce to the term.
	if len(multiplicities) == 1 && op.ConstantTerm().Value() == op.Identity() {
		for term, multiplicity := range multiplicities {
			if multiplicity == 1 {
				return term
			}
		}
	}
	//
	var positive, negative []Term
	//
	for term, multiplicity := range multiplicities {
		var (
			count  = multiplicity
			bucket = &positive
		)
		//
		if count < 0 {
			count = -count
			bucket = &negative
		}
		//
		if count > 1 {
			if fused := fuse(term, count); fused != nil {
				*bucket = append(*bucket, tx.Transform(fused))
				continue
			}
		}
		//
		for i := 0; i < count; i++ {
			*bucket = append(*bucket, term)
		}
	}
	// Sort the terms by their key, shorter keys first, for stable output.
	sortTermsByKey(positive)
	sortTermsByKey(negative)
	//
	reduced := newGroupLike(op, tx.Transform(op.ConstantTerm()))
	for _, term := range positive {
		reduced.AddPositiveTerm(term)
	}
	for _, term := range negative {
		reduced.AddNegativeTerm(term)
	}
	// Regroup, so that fused powers and products splice into this operation.
	return groupTerms(tx, next, reduced)
}

// Transform a negative constant factor to its additive inverse, pulling the
// minus sign into an enclosed sum: -K*x*(a-b) -> K*x*(b-a).  Only a sum with
// a sole owner is inverted, since inverting a shared sum would undo its
// sharing.
func (p *Reduced) rewriteMultiplication(tx *Transform, next Rewriter, term *Multiplication) Term {
	if term.ConstantTerm().Value() < 0 {
		var (
			positive = slices.Clone(term.PositiveTerms())
			negative = slices.Clone(term.NegativeTerms())
			slot     *Term
		)
		//
		for _, terms := range [][]Term{positive, negative} {
			for i := range terms {
				if sum, ok := terms[i].(*Addition); ok && tx.Owners(sum) <= 1 {
					slot = &terms[i]
					break
				}
			}
			//
			if slot != nil {
				break
			}
		}
		//
		if slot != nil {
			sum := (*slot).(*Addition)
			inverse := NewAddition(tx.Transform(NewConstant(-sum.ConstantTerm().Value())))
			//
			for _, t := range sum.PositiveTerms() {
				inverse.AddNegativeTerm(t)
			}
			for _, t := range sum.NegativeTerms() {
				inverse.AddPositiveTerm(t)
			}
			//
			*slot = tx.Transform(inverse)
			//
			flipped := NewMultiplication(tx.Transform(NewConstant(-term.ConstantTerm().Value())))
			for _, t := range positive {
				flipped.AddPositiveTerm(t)
			}
			for _, t := range negative {
				flipped.AddNegativeTerm(t)
			}
			// recursion
			return p.rewriteMultiplication(tx, next, flipped)
		}
	}
	//
	return p.reduceGroup(tx, next, term, fuseFactors)
}

// Exponent expansion by recursive squaring: x^7 -> ((x*x)*(x*x))*(x*x)*x.
// Only exponents which fold to an exact integer are expanded; the coercion
// test is float64(int(e)) == e, deliberately without an epsilon.  The
// expansion re-enters the full stack, so that a single-factor product
// collapses to its squaring chain.
func (p *Reduced) rewriteExponentiation(tx *Transform, next Rewriter, term *Exponentiation) Term {
	if constant := term.Exponent().Fold(); constant.HasValue() {
		exponent := int(constant.Unwrap())
		if float64(exponent) == constant.Unwrap() {
			return tx.Transform(expandBySquaring(term.Base(), exponent))
		}
	}
	//
	return next(term)
}

// Decompose |n| in binary, appending the running square chain once per set
// bit.  A negative exponent collects the factors on the negative side.
func expandBySquaring(base Term, exponent int) *Multiplication {
	var (
		result  = NewMultiplication(nil)
		current = base
		bits    = exponent
	)
	//
	if bits < 0 {
		bits = -bits
	}
	//
	for ; bits > 0; bits /= 2 {
		if bits&1 == 1 {
			if exponent > 0 {
				result.AddPositiveTerm(current)
			} else {
				result.AddNegativeTerm(current)
			}
		}
		//
		if bits > 1 {
			current = NewSquaring(current)
		}
	}
	//
	return result
}

// Sort terms by their key: shorter keys first, then lexicographically.
func sortTermsByKey(terms []Term) {
	slices.SortFunc(terms, func(t1 Term, t2 Term) int {
		k1, k2 := t1.Key(), t2.Key()
		//
		if len(k1) != len(k2) {
			return len(k1) - len(k2)
		} else if k1 < k2 {
			return -1
		} else if k1 > k2 {
			return 1
		}
		//
		return 0
	})
}
