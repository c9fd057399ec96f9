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

// Sequence is the root of a semantic graph: an unordered collection of terms,
// typically the outputs of a program.
type Sequence struct {
	cache
	terms []Term
}

// NewSequence constructs a new (initially empty) sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Terms returns the terms of this sequence.
func (p *Sequence) Terms() []Term { return p.terms }

// AddTerm appends a term to this sequence.  Panics if the sequence is frozen.
func (p *Sequence) AddTerm(term Term) {
	if term == nil {
		panic("sequence requires a term")
	}
	//
	p.checkModifiable()
	p.terms = append(p.terms, term)
}

// Depth implementation for the Term interface.
func (p *Sequence) Depth() int {
	return p.getDepth(func() int {
		depth := -1
		for _, term := range p.terms {
			depth = max(depth, term.Depth())
		}
		//
		return 1 + depth
	})
}

// Key implementation for the Term interface.  The children's keys are sorted
// before joining, making the key invariant under reordering.
func (p *Sequence) Key() string {
	return p.getKey(func() string {
		keys := make([]string, len(p.terms))
		for i, term := range p.terms {
			keys[i] = term.Key()
		}
		//
		slices.Sort(keys)
		//
		return strings.Join(keys, "|")
	})
}

// Fold implementation for the Term interface.
func (p *Sequence) Fold() util.Option[float64] {
	return util.None[float64]()
}
