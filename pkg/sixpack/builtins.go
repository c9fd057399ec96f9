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

import (
	"math"
	"sort"
)

// Builtins returns the standard set of unary host functions.  Note that sin
// and cos must be registered as math.Sin and math.Cos for the code generator
// to fuse matching pairs into SINCOS intrinsics.
func Builtins() map[string]func(float64) float64 {
	return map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"sqrt": math.Sqrt,
		"exp":  math.Exp,
		"log":  math.Log,
		"abs":  math.Abs,
	}
}

// AddBuiltinFunctions registers the standard function set on this compiler.
func (p *Compiler) AddBuiltinFunctions() error {
	var (
		builtins = Builtins()
		names    []string
	)
	//
	for name := range builtins {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	for _, name := range names {
		if err := p.AddFunction(name, builtins[name]); err != nil {
			return err
		}
	}
	//
	return nil
}
