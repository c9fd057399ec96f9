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
)

// Address is an index into the flat memory plane of an executable.  The plane
// is laid out, low to high, as: the scratchpad word at address zero, one word
// per input, one word per compile-time constant, and finally one word per
// instruction (each instruction writes the slot at its own address).
type Address uint32

// ScratchpadAddress is the memory slot absorbing dead writes: unused declared
// inputs are mapped here.
const ScratchpadAddress Address = 0

// Constants describes the constant segment: the values are written to the
// memory plane at consecutive addresses starting at the offset whenever an
// executable is instantiated.
type Constants struct {
	// Offset is the address of the first constant word.
	Offset Address
	// Values holds one value per constant word.
	Values []float64
}

// Code describes the code segment: instruction i writes the word at address
// Offset+i.
type Code struct {
	// Offset is the address of the first instruction slot.
	Offset Address
	// Instructions holds the instruction list in execution order.
	Instructions []Instruction
}

// Program is a compiled expression set: a compact instruction list plus the
// memory layout it operates on.  A program is immutable after construction
// and hence freely shareable across threads; each concurrent evaluator must
// instantiate its own executable.
type Program struct {
	inputs    map[string]Address
	outputs   map[string]Address
	constants Constants
	code      Code
	comments  map[Address]string
}

// NewProgram constructs a program, asserting the memory layout invariants:
// the constant segment overlaps neither the scratchpad nor the code segment,
// no input maps into the constant segment or above it, and no output maps to
// the scratchpad.
func NewProgram(inputs map[string]Address, outputs map[string]Address, constants Constants,
	code Code, comments map[Address]string) *Program {
	constantsEnd := constants.Offset + Address(len(constants.Values))
	//
	if len(constants.Values) > 0 && (constants.Offset <= ScratchpadAddress || constantsEnd > code.Offset) {
		panic("constant segment overlaps the scratchpad or the code segment")
	}
	//
	for name, address := range inputs {
		if address >= code.Offset || (address >= constants.Offset && address < constantsEnd) {
			panic(fmt.Sprintf("input '%s' maps into the constant or code segment", name))
		}
	}
	//
	for name, address := range outputs {
		if address == ScratchpadAddress {
			panic(fmt.Sprintf("output '%s' maps to the scratchpad", name))
		}
	}
	//
	return &Program{inputs, outputs, constants, code, comments}
}

// Inputs returns the name-to-address mapping of the program inputs.
func (p *Program) Inputs() map[string]Address { return p.inputs }

// Outputs returns the name-to-address mapping of the program outputs.
func (p *Program) Outputs() map[string]Address { return p.outputs }

// Constants returns the constant segment descriptor.
func (p *Program) Constants() Constants { return p.constants }

// Code returns the code segment descriptor.
func (p *Program) Code() Code { return p.code }

// Comments returns the per-address annotations collected during code
// generation, for disassembly.
func (p *Program) Comments() map[Address]string { return p.comments }

// MemorySize returns the number of memory words an executable of this program
// requires.
func (p *Program) MemorySize() int {
	return int(p.code.Offset) + len(p.code.Instructions)
}

// InputAddress looks up the memory address a given input must be written to
// before each run.
func (p *Program) InputAddress(name string) (Address, error) {
	if address, ok := p.inputs[name]; ok {
		return address, nil
	}
	//
	return 0, fmt.Errorf("Unknown input '%s'", name)
}

// OutputAddress looks up the memory address a given output can be read from
// after each run.
func (p *Program) OutputAddress(name string) (Address, error) {
	if address, ok := p.outputs[name]; ok {
		return address, nil
	}
	//
	return 0, fmt.Errorf("Unknown output '%s'", name)
}
