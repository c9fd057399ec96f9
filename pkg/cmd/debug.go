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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgb-xyz/Sixpack/pkg/asg"
	"github.com/rgb-xyz/Sixpack/pkg/ast"
)

var debugCmd = &cobra.Command{
	Use:   "debug [flags] script_file",
	Short: "print the syntax trees and the rewritten term graph of a script.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		compiler := readScriptFile(args[0])
		//
		if getFlag(cmd, "ast") {
			for _, output := range compiler.Outputs() {
				printSection(fmt.Sprintf("Syntax Tree '%s'", output.Name()))
				ast.DumpTree(os.Stdout, output.Expr())
			}
		}
		//
		graph, err := compiler.MakeGraph()
		if err != nil {
			reportError(args[0], err)
			os.Exit(1)
		}
		//
		if getFlag(cmd, "raw") {
			printSection("Term Graph (raw)")
			asg.DumpGraph(os.Stdout, graph)
		}
		//
		printSection("Term Graph (rewritten)")
		asg.DumpGraph(os.Stdout, asg.NewPipeline().Apply(graph))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().Bool("ast", false, "include per-output syntax trees")
	debugCmd.Flags().Bool("raw", false, "include the term graph before rewriting")
}
