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

// Rewriter continues a rewrite with the next layer of the stack.
type Rewriter func(Term) Term

// Coalescer continues a coalesce with the next layer of the stack.
type Coalescer func(Term) Term

// Layer is a single rewrite layer of a transform stack.  Each layer adds one
// algebraic law: its Rewrite hook handles the term kinds it is interested in
// and delegates everything else to the next layer; its Coalesce hook may
// replace a freshly rewritten term with a canonical equivalent before the
// result is memoised.  A layer which does not participate in a hook simply
// forwards to next.
type Layer interface {
	// Rewrite transforms a single term.  The layer may recurse into children
	// via tx.Transform, and hands terms it has (re)built to the next layer.
	Rewrite(tx *Transform, next Rewriter, term Term) Term
	// Coalesce canonicalises a freshly rewritten term.
	Coalesce(tx *Transform, next Coalescer, term Term) Term
}

// Transform drives a stack of rewrite layers over a term graph.  Results are
// memoised by input term identity: every subtree is transformed at most once
// per run.  Beneath the final layer sits an implicit identity stage which
// reconstructs a term from its transformed children, so layers only need to
// handle the kinds they actually rewrite.
//
// A transform is single-use state: the memoisation table (and any state held
// by the layers, such as the merge cache) lives for one run.
type Transform struct {
	layers []Layer
	memo   map[Term]Term
	owners map[Term]int
}

// NewTransform constructs a transform from the given layers, outermost first.
func NewTransform(layers ...Layer) *Transform {
	return &Transform{
		layers: layers,
		memo:   make(map[Term]Term),
		owners: make(map[Term]int),
	}
}

// NewPipeline constructs the default rewrite stack.  Grouping runs before
// reduction on every term, so that reduction counts multiplicities over the
// flattened children; the reduction's own products (fused powers, expanded
// exponents) re-enter the full stack and are grouped and reduced in turn.
// Constant folding and merging coalesce every result.
func NewPipeline() *Transform {
	return NewTransform(&Grouped{}, &Reduced{}, &ConstEvaluated{}, NewMerge())
}

// Apply transforms a graph from its root.  The ownership census taken here
// drives the uniquely-held test of the reduction layer.
func (p *Transform) Apply(root Term) Term {
	p.countOwners(root, make(map[Term]bool))
	//
	return p.Transform(root)
}

// Transform rewrites a single term through the full layer stack, memoising
// the result.  Layers use this to recurse into children.
func (p *Transform) Transform(term Term) Term {
	if term == nil {
		panic("cannot transform a nil term")
	}
	//
	if result, ok := p.memo[term]; ok {
		return result
	}
	//
	result := p.rewrite(0, term)
	// Carry the source back-reference forward.
	if term.Source() != nil && result.Source() == nil {
		result.SetSource(term.Source())
	}
	//
	result = p.coalesce(0, result)
	p.memo[term] = result
	//
	return result
}

// Owners returns the number of parents referencing a given term in the input
// graph.  Terms created during the rewrite have no registered parents.
func (p *Transform) Owners(term Term) int {
	return p.owners[term]
}

func (p *Transform) rewrite(index int, term Term) Term {
	if index < len(p.layers) {
		next := func(t Term) Term { return p.rewrite(index+1, t) }
		return p.layers[index].Rewrite(p, next, term)
	}
	//
	return p.rebuild(term)
}

func (p *Transform) coalesce(index int, term Term) Term {
	if index < len(p.layers) {
		next := func(t Term) Term { return p.coalesce(index+1, t) }
		return p.layers[index].Coalesce(p, next, term)
	}
	//
	return term
}

// rebuild is the identity stage: it reconstructs a term of the same kind from
// its transformed children.  Terminals pass through unchanged.
func (p *Transform) rebuild(term Term) Term {
	switch t := term.(type) {
	case *Sequence:
		rebuilt := NewSequence()
		for _, child := range t.Terms() {
			rebuilt.AddTerm(p.Transform(child))
		}
		//
		return rebuilt
	case *Constant:
		return t
	case *Input:
		return t
	case *Output:
		return NewOutput(t.Name(), p.Transform(t.Term()))
	case *UnaryFunction:
		return NewUnaryFunction(t.Function(), p.Transform(t.Argument()))
	case *Addition:
		return p.rebuildGroup(t, NewAddition(p.Transform(t.ConstantTerm())))
	case *Multiplication:
		return p.rebuildGroup(t, NewMultiplication(p.Transform(t.ConstantTerm())))
	case *Exponentiation:
		return NewExponentiation(p.Transform(t.Base()), p.Transform(t.Exponent()))
	case *Squaring:
		return NewSquaring(p.Transform(t.Base()))
	default:
		panic("unknown term kind")
	}
}

func (p *Transform) rebuildGroup(from GroupTerm, to GroupTerm) Term {
	for _, child := range from.PositiveTerms() {
		to.AddPositiveTerm(p.Transform(child))
	}
	for _, child := range from.NegativeTerms() {
		to.AddNegativeTerm(p.Transform(child))
	}
	//
	return to
}

// countOwners walks the input graph once, counting for every term how many
// parents reference it.
func (p *Transform) countOwners(term Term, visited map[Term]bool) {
	if visited[term] {
		return
	}
	//
	visited[term] = true
	//
	for _, child := range childrenOf(term) {
		p.owners[child]++
		p.countOwners(child, visited)
	}
}

// childrenOf enumerates the children of a term, including the constant term
// of group operations.
func childrenOf(term Term) []Term {
	switch t := term.(type) {
	case *Sequence:
		return t.Terms()
	case *Constant, *Input:
		return nil
	case *Output:
		return []Term{t.Term()}
	case *UnaryFunction:
		return []Term{t.Argument()}
	case *Addition:
		return groupChildren(&t.group)
	case *Multiplication:
		return groupChildren(&t.group)
	case *Exponentiation:
		return []Term{t.Base(), t.Exponent()}
	case *Squaring:
		return []Term{t.Base()}
	default:
		panic("unknown term kind")
	}
}

func groupChildren(g *group) []Term {
	children := make([]Term, 0, len(g.positive)+len(g.negative)+1)
	children = append(children, g.constant)
	children = append(children, g.positive...)
	children = append(children, g.negative...)
	//
	return children
}
