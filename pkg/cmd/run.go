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
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgb-xyz/Sixpack/pkg/program"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script_file",
	Short: "compile a script and evaluate it once.",
	Long: `Compile a given expression script and evaluate it for the supplied inputs.
	 Inputs are given as --input name=value; a comma-separated list of up to four
	 values evaluates the program on the lane vector instead, e.g.
	 --input x=1,1.001 for a finite-difference derivative in the second lane.`,
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
		inputs, vectorised := parseInputs(getStringArray(cmd, "input"))
		//
		if vectorised {
			runVector(compiled, inputs)
		} else {
			runScalar(compiled, inputs)
		}
	},
}

// parseInputs splits the --input assignments into a name-to-lanes mapping.
// Any input with more than one lane switches to vector evaluation.
func parseInputs(assignments []string) (map[string][]float64, bool) {
	var (
		inputs     = make(map[string][]float64)
		vectorised = false
	)
	//
	for _, assignment := range assignments {
		name, values, ok := strings.Cut(assignment, "=")
		if !ok {
			fmt.Printf("malformed input \"%s\"\n", assignment)
			os.Exit(2)
		}
		//
		var lanes []float64
		//
		for _, item := range strings.Split(values, ",") {
			value, err := strconv.ParseFloat(item, 64)
			if err != nil {
				fmt.Printf("malformed input \"%s\": %s\n", assignment, err)
				os.Exit(2)
			}
			//
			lanes = append(lanes, value)
		}
		//
		if len(lanes) > program.VectorSize {
			fmt.Printf("too many lanes for input \"%s\" (max %d)\n", name, program.VectorSize)
			os.Exit(2)
		}
		//
		vectorised = vectorised || len(lanes) > 1
		inputs[name] = lanes
	}
	//
	return inputs, vectorised
}

func runScalar(compiled *program.Program, inputs map[string][]float64) {
	executable := compiled.NewScalarExecutable()
	//
	for name, lanes := range inputs {
		address, err := compiled.InputAddress(name)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		executable.Memory()[address] = lanes[0]
	}
	//
	executable.Run()
	//
	printSection("Outputs")
	//
	for _, name := range outputNames(compiled) {
		address, _ := compiled.OutputAddress(name)
		fmt.Printf("%s = %v\n", name, executable.Memory()[address])
	}
}

func runVector(compiled *program.Program, inputs map[string][]float64) {
	executable := compiled.NewVectorExecutable()
	//
	for name, lanes := range inputs {
		address, err := compiled.InputAddress(name)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Missing lanes repeat the first value.
		word := program.Splat(lanes[0])
		for i, value := range lanes {
			word[i] = value
		}
		//
		executable.Memory()[address] = word
	}
	//
	executable.Run()
	//
	printSection("Outputs")
	//
	for _, name := range outputNames(compiled) {
		address, _ := compiled.OutputAddress(name)
		fmt.Printf("%s = %v\n", name, executable.Memory()[address])
	}
}

func outputNames(compiled *program.Program) []string {
	var names []string
	//
	for name := range compiled.Outputs() {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayP("input", "i", []string{}, "assign an input, e.g. x=1 or x=1,1.001")
}
