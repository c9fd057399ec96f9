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

// Merge is the coalescing layer which shares structurally identical subtrees
// across the whole graph (global common-subexpression elimination).  It keeps
// a mapping from structural keys to previously emitted terms; a freshly
// rewritten term whose key is already known is discarded in favour of the
// cached equivalent.  Merge must be the innermost layer of a stack.
type Merge struct {
	terms map[string]Term
}

// NewMerge constructs a new merge layer with an empty cache.
func NewMerge() *Merge {
	return &Merge{make(map[string]Term)}
}

// Rewrite implementation for the Layer interface.  Merge rewrites nothing.
func (p *Merge) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	return next(term)
}

// Coalesce implementation for the Layer interface.
func (p *Merge) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	// A sequence is never coalesced: a sequence of a single term has the same
	// key as that term.
	if _, ok := term.(*Sequence); ok {
		return term
	}
	//
	key := term.Key()
	//
	if cached, ok := p.terms[key]; ok {
		// Promote the source back-reference onto the shared instance.
		if cached.Source() == nil && term.Source() != nil {
			cached.SetSource(term.Source())
		}
		//
		return cached
	}
	//
	p.terms[key] = term
	//
	return term
}
