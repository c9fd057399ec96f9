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

	"github.com/rgb-xyz/Sixpack/pkg/program"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] script_file",
	Short: "compile a script and print the disassembled program.",
	Long: `Compile a given expression script into a bytecode program and print the
	 resulting memory layout and instruction listing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		compiler := readScriptFile(args[0])
		//
		compiled, err := compiler.Compile()
		if err != nil {
			reportError(args[0], err)
			os.Exit(1)
		}
		//
		printSection("Compiled Program")
		program.Disassemble(os.Stdout, compiled)
		//
		fmt.Printf("\n%d instructions, %d memory words.\n",
			len(compiled.Code().Instructions), compiled.MemorySize())
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
