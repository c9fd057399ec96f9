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
package sixpack

// CompileError reports a post-parse semantic failure: a duplicate symbol or
// output, an unknown symbol during graph build, or a failed memory mapping
// during code generation.  Unlike syntax errors it carries a message only.
// Parse failures surface as *source.SyntaxError values instead, carrying the
// position within the original text.
type CompileError struct {
	message string
}

// Error implementation for the error interface.
func (p *CompileError) Error() string {
	return p.message
}
