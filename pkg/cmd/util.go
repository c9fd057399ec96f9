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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rgb-xyz/Sixpack/pkg/sixpack"
	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// Get an expected flag, or print the error and exit with status 2.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or print the error and exit with status 2.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readScriptFile loads a script file and applies it to a fresh compiler with
// the builtin functions registered.  Errors are reported and terminate the
// process.
func readScriptFile(filename string) *sixpack.Compiler {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.AddBuiltinFunctions(); err == nil {
		err = compiler.AddSourceScript(string(bytes))
	}
	//
	if err != nil {
		reportError(filename, err)
		os.Exit(2)
	}
	//
	return compiler
}

// reportError prints a given error; syntax errors are shown with their
// enclosing source line and a caret below the offending position.
func reportError(filename string, err error) {
	if syntax, ok := err.(*source.SyntaxError); ok {
		line := syntax.FirstEnclosingLine()
		column := syntax.Position() - line.Start()
		//
		fmt.Printf("%s:%d:%d: %s\n", filename, line.Number(), column+1, syntax.Message())
		fmt.Println(line.String())
		fmt.Printf("%s^\n", strings.Repeat(" ", column))
		//
		return
	}
	//
	fmt.Println(err)
}

// printSection prints a section heading filling the terminal width.
func printSection(title string) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	//
	rule := max(1, width-len(title)-4)
	//
	fmt.Printf("\n-- %s %s\n", title, strings.Repeat("-", rule))
}
