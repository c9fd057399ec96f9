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
	"math"
)

// ScalarExecutable evaluates a program one point at a time.  It owns its
// mutable memory plane: callers write inputs through Memory before each Run
// and read outputs afterwards.  An executable is not safe for concurrent use;
// instantiate one per goroutine from the shared program.
type ScalarExecutable struct {
	program *Program
	memory  []float64
}

// NewScalarExecutable instantiates a scalar executable, allocating its memory
// plane and copying the program constants into their slots.
func (p *Program) NewScalarExecutable() *ScalarExecutable {
	memory := make([]float64, p.MemorySize())
	copy(memory[p.constants.Offset:], p.constants.Values)
	//
	return &ScalarExecutable{p, memory}
}

// Program returns the program this executable was instantiated from.
func (p *ScalarExecutable) Program() *Program { return p.program }

// Memory returns the mutable memory plane of this executable.
func (p *ScalarExecutable) Memory() []float64 { return p.memory }

// Run evaluates all instructions in order.  Arithmetic failures are never
// intercepted: divisions by zero and domain errors propagate as IEEE-754
// NaN/Inf values through subsequent instructions.
func (p *ScalarExecutable) Run() {
	var (
		memory = p.memory
		offset = int(p.program.code.Offset)
	)
	//
	for i := range p.program.code.Instructions {
		insn := &p.program.code.Instructions[i]
		slot := offset + i
		//
		switch insn.Opcode {
		case NOP:
			// keep the slot
		case ADD:
			memory[slot] = memory[insn.Source] + memory[insn.Operand]
		case ADD_IMM:
			memory[slot] = insn.Immediate + memory[insn.Operand]
		case SUBTRACT:
			memory[slot] = memory[insn.Source] - memory[insn.Operand]
		case SUBTRACT_IMM:
			memory[slot] = insn.Immediate - memory[insn.Operand]
		case MULTIPLY:
			memory[slot] = memory[insn.Source] * memory[insn.Operand]
		case MULTIPLY_IMM:
			memory[slot] = insn.Immediate * memory[insn.Operand]
		case DIVIDE:
			memory[slot] = memory[insn.Source] / memory[insn.Operand]
		case DIVIDE_IMM:
			memory[slot] = insn.Immediate / memory[insn.Operand]
		case POWER:
			memory[slot] = math.Pow(memory[insn.Source], memory[insn.Operand])
		case CALL:
			memory[slot] = insn.Function.Fn()(memory[insn.Operand])
		case SIN:
			memory[slot] = math.Sin(memory[insn.Operand])
		case COS:
			memory[slot] = math.Cos(memory[insn.Operand])
		case SINCOS:
			argument := memory[insn.Operand]
			memory[slot] = math.Sin(argument)
			memory[slot+insn.Target] = math.Cos(argument)
		default:
			panic("unknown opcode")
		}
	}
}

// VectorExecutable evaluates a program over a fixed-width lane vector, with
// identical control logic to the scalar interpreter.  The elementwise
// operators cover the arithmetic opcodes; POWER, CALL and the trigonometric
// intrinsics loop over lanes applying the scalar host function.
type VectorExecutable struct {
	program *Program
	memory  []Vector
}

// NewVectorExecutable instantiates a vector executable, allocating its memory
// plane and splatting the program constants across all lanes of their slots.
func (p *Program) NewVectorExecutable() *VectorExecutable {
	memory := make([]Vector, p.MemorySize())
	//
	for i, value := range p.constants.Values {
		memory[int(p.constants.Offset)+i] = Splat(value)
	}
	//
	return &VectorExecutable{p, memory}
}

// Program returns the program this executable was instantiated from.
func (p *VectorExecutable) Program() *Program { return p.program }

// Memory returns the mutable memory plane of this executable.
func (p *VectorExecutable) Memory() []Vector { return p.memory }

// Run evaluates all instructions in order, lane by lane.
func (p *VectorExecutable) Run() {
	var (
		memory = p.memory
		offset = int(p.program.code.Offset)
	)
	//
	for i := range p.program.code.Instructions {
		insn := &p.program.code.Instructions[i]
		slot := offset + i
		//
		switch insn.Opcode {
		case NOP:
			// keep the slot
		case ADD:
			memory[slot] = memory[insn.Source].Add(memory[insn.Operand])
		case ADD_IMM:
			memory[slot] = Splat(insn.Immediate).Add(memory[insn.Operand])
		case SUBTRACT:
			memory[slot] = memory[insn.Source].Sub(memory[insn.Operand])
		case SUBTRACT_IMM:
			memory[slot] = Splat(insn.Immediate).Sub(memory[insn.Operand])
		case MULTIPLY:
			memory[slot] = memory[insn.Source].Mul(memory[insn.Operand])
		case MULTIPLY_IMM:
			memory[slot] = Splat(insn.Immediate).Mul(memory[insn.Operand])
		case DIVIDE:
			memory[slot] = memory[insn.Source].Div(memory[insn.Operand])
		case DIVIDE_IMM:
			memory[slot] = Splat(insn.Immediate).Div(memory[insn.Operand])
		case POWER:
			var result Vector
			for lane := 0; lane < VectorSize; lane++ {
				result[lane] = math.Pow(memory[insn.Source][lane], memory[insn.Operand][lane])
			}
			//
			memory[slot] = result
		case CALL:
			memory[slot] = memory[insn.Operand].Map(insn.Function.Fn())
		case SIN:
			memory[slot] = memory[insn.Operand].Map(math.Sin)
		case COS:
			memory[slot] = memory[insn.Operand].Map(math.Cos)
		case SINCOS:
			argument := memory[insn.Operand]
			memory[slot] = argument.Map(math.Sin)
			memory[slot+insn.Target] = argument.Map(math.Cos)
		default:
			panic("unknown opcode")
		}
	}
}
