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

// ConstEvaluated is the coalescing layer which folds constant subtrees.  Any
// freshly rewritten term which evaluates to a constant is replaced by a fresh
// Constant before the downstream merge sees it.
type ConstEvaluated struct{}

// Rewrite implementation for the Layer interface.  This layer rewrites
// nothing.
func (p *ConstEvaluated) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	return next(term)
}

// Coalesce implementation for the Layer interface.
func (p *ConstEvaluated) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	if value := term.Fold(); value.HasValue() {
		constant := NewConstant(value.Unwrap())
		constant.SetSource(term.Source())
		term = constant
	}
	//
	return next(term)
}
