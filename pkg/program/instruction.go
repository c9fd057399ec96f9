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
	"reflect"
	"strconv"

	"github.com/rgb-xyz/Sixpack/pkg/symbols"
)

// Opcode identifies the operation performed by a single instruction.  The
// opcode also discriminates which payload fields of the instruction are
// meaningful.
type Opcode uint8

const (
	// NOP does nothing and preserves its slot.
	NOP Opcode = iota
	// ADD computes memory[source] + memory[operand].
	ADD
	// ADD_IMM computes immediate + memory[operand].
	ADD_IMM
	// SUBTRACT computes memory[source] - memory[operand].
	SUBTRACT
	// SUBTRACT_IMM computes immediate - memory[operand].
	SUBTRACT_IMM
	// MULTIPLY computes memory[source] * memory[operand].
	MULTIPLY
	// MULTIPLY_IMM computes immediate * memory[operand].
	MULTIPLY_IMM
	// DIVIDE computes memory[source] / memory[operand].
	DIVIDE
	// DIVIDE_IMM computes immediate / memory[operand].
	DIVIDE_IMM
	// POWER computes pow(memory[source], memory[operand]).
	POWER
	// CALL computes function(memory[operand]).
	CALL
	// SIN computes sin(memory[operand]).
	SIN
	// COS computes cos(memory[operand]).
	COS
	// SINCOS computes sin(memory[operand]) into its own slot and
	// cos(memory[operand]) into the slot at the signed target displacement.
	SINCOS
)

// String implementation for the Stringer interface.
func (o Opcode) String() string {
	switch o {
	case NOP:
		return "NOP"
	case ADD:
		return "ADD"
	case ADD_IMM:
		return "ADD_IMM"
	case SUBTRACT:
		return "SUBTRACT"
	case SUBTRACT_IMM:
		return "SUBTRACT_IMM"
	case MULTIPLY:
		return "MULTIPLY"
	case MULTIPLY_IMM:
		return "MULTIPLY_IMM"
	case DIVIDE:
		return "DIVIDE"
	case DIVIDE_IMM:
		return "DIVIDE_IMM"
	case POWER:
		return "POWER"
	case CALL:
		return "CALL"
	case SIN:
		return "SIN"
	case COS:
		return "COS"
	case SINCOS:
		return "SINCOS"
	default:
		return "???"
	}
}

// Instruction is a single operation of a compiled program.  Besides the
// opcode it carries the address of its (right-hand) memory operand plus one
// opcode-dependent payload: the left-hand source address of binary register
// operations, the immediate of the _IMM forms, the host function of CALL, or
// the signed slot displacement of SINCOS.  The instruction's own output slot
// is implied by its position in the code segment.
type Instruction struct {
	// Opcode discriminates the payload fields below.
	Opcode Opcode
	// Operand is the address of the memory operand.
	Operand Address
	// Source is the address of the left-hand operand (register forms only).
	Source Address
	// Immediate is the constant operand (_IMM forms only).
	Immediate float64
	// Function is the host function applied by CALL.
	Function *symbols.Function
	// Target is the displacement of the cosine slot (SINCOS only).
	Target int
}

// Matches checks whether two instructions perform the same operation on the
// same operands, comparing only the fields their opcode discriminates.  This
// drives the instruction-level common-subexpression elimination.  NOPs are
// never merged.
func (p *Instruction) Matches(other *Instruction) bool {
	if p.Opcode != other.Opcode {
		return false
	}
	//
	switch p.Opcode {
	case NOP:
		return false
	case ADD, SUBTRACT, MULTIPLY, DIVIDE, POWER:
		return p.Operand == other.Operand && p.Source == other.Source
	case ADD_IMM, SUBTRACT_IMM, MULTIPLY_IMM, DIVIDE_IMM:
		return p.Operand == other.Operand && p.Immediate == other.Immediate
	case CALL:
		return p.Operand == other.Operand && funcPointer(p.Function.Fn()) == funcPointer(other.Function.Fn())
	case SIN, COS:
		return p.Operand == other.Operand
	case SINCOS:
		return p.Operand == other.Operand && p.Target == other.Target
	default:
		panic("unknown opcode")
	}
}

// String implementation for the Stringer interface.
func (p *Instruction) String() string {
	switch p.Opcode {
	case NOP:
		return "NOP"
	case ADD, SUBTRACT, MULTIPLY, DIVIDE, POWER:
		return fmt.Sprintf("%-12s [%d], [%d]", p.Opcode, p.Source, p.Operand)
	case ADD_IMM, SUBTRACT_IMM, MULTIPLY_IMM, DIVIDE_IMM:
		immediate := strconv.FormatFloat(p.Immediate, 'g', -1, 64)
		return fmt.Sprintf("%-12s %s, [%d]", p.Opcode, immediate, p.Operand)
	case CALL:
		return fmt.Sprintf("%-12s %s, [%d]", p.Opcode, p.Function.Name(), p.Operand)
	case SIN, COS:
		return fmt.Sprintf("%-12s [%d]", p.Opcode, p.Operand)
	case SINCOS:
		return fmt.Sprintf("%-12s %+d, [%d]", p.Opcode, p.Target, p.Operand)
	default:
		panic("unknown opcode")
	}
}

// funcPointer determines the code pointer of a given host function, i.e. the
// identity under which functions are compared.
func funcPointer(fn func(float64) float64) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
