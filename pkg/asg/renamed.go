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

// Renamed is the rewrite layer which renames inputs and outputs through a
// provided mapping.  Names without a mapping pass through unchanged.
type Renamed struct {
	renames map[string]string
}

// NewRenamed constructs a renaming layer for a given mapping.
func NewRenamed(renames map[string]string) *Renamed {
	return &Renamed{renames}
}

// Rewrite implementation for the Layer interface.
func (p *Renamed) Rewrite(tx *Transform, next Rewriter, term Term) Term {
	switch t := term.(type) {
	case *Input:
		return next(NewInput(p.rename(t.Name())))
	case *Output:
		return next(NewOutput(p.rename(t.Name()), t.Term()))
	default:
		return next(term)
	}
}

// Coalesce implementation for the Layer interface.  This layer coalesces
// nothing.
func (p *Renamed) Coalesce(tx *Transform, next Coalescer, term Term) Term {
	return next(term)
}

func (p *Renamed) rename(name string) string {
	if renamed, ok := p.renames[name]; ok {
		return renamed
	}
	//
	return name
}
