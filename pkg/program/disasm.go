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
package program

import (
	"fmt"
	"io"
	"strconv"
)

// Disassemble writes a human-readable listing of the whole memory plane of a
// program: the scratchpad, the input and constant words, and one line per
// instruction, each with the annotations collected during code generation.
func Disassemble(w io.Writer, p *Program) {
	rows := make([][2]string, 0, p.MemorySize())
	//
	for address := Address(0); address < p.constants.Offset; address++ {
		content := "(input)"
		if address == ScratchpadAddress {
			content = "(scratch-pad)"
		}
		//
		rows = append(rows, [2]string{content, p.comments[address]})
	}
	//
	for _, value := range p.constants.Values {
		address := Address(len(rows))
		rows = append(rows, [2]string{strconv.FormatFloat(value, 'g', -1, 64), p.comments[address]})
	}
	//
	for i := range p.code.Instructions {
		address := p.code.Offset + Address(i)
		rows = append(rows, [2]string{p.code.Instructions[i].String(), p.comments[address]})
	}
	// Align the annotation column.
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	//
	for address, row := range rows {
		if row[1] == "" {
			fmt.Fprintf(w, "[%3d]  %s\n", address, row[0])
		} else {
			fmt.Fprintf(w, "[%3d]  %-*s  ; %s\n", address, width, row[0], row[1])
		}
	}
}
