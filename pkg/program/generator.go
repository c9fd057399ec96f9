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
	"math"
	"slices"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/rgb-xyz/Sixpack/pkg/asg"
	"github.com/rgb-xyz/Sixpack/pkg/ast"
	"github.com/rgb-xyz/Sixpack/pkg/symbols"
	"github.com/rgb-xyz/Sixpack/pkg/util"
)

var (
	sinPointer = funcPointer(math.Sin)
	cosPointer = funcPointer(math.Cos)
)

// Generate compiles a rewritten term graph into a program.  The graph is
// scheduled by depth: level zero becomes the data section, deeper levels are
// emitted as straight-line code in ascending order, so that every instruction
// only reads addresses below its own slot.  Declared variables never
// referenced by an output are mapped to the scratchpad.
func Generate(root asg.Term, lexicon *symbols.Lexicon) (*Program, error) {
	generator := &generator{
		unique:   make(map[asg.Term]bool),
		inputs:   make(map[string]Address),
		outputs:  make(map[string]Address),
		comments: make(map[Address]string),
		mapping:  make(map[asg.Term]Address),
	}
	//
	generator.gather(root)
	//
	return generator.generate(lexicon)
}

type generator struct {
	unique    map[asg.Term]bool
	levels    [][]asg.Term
	inputs    map[string]Address
	outputs   map[string]Address
	constants Constants
	code      Code
	comments  map[Address]string
	mapping   map[asg.Term]Address
}

func (p *generator) generate(lexicon *symbols.Lexicon) (*Program, error) {
	p.addComment(ScratchpadAddress, "scratch-pad")
	//
	for level := range p.levels {
		// Stable kind-sort makes the emission order deterministic.
		slices.SortStableFunc(p.levels[level], func(t1 asg.Term, t2 asg.Term) int {
			return kindOrder(t1) - kindOrder(t2)
		})
		//
		var err error
		if level == 0 {
			err = p.generateDataSection(p.levels[level])
		} else {
			err = p.generateCodeSection(p.levels[level])
		}
		//
		if err != nil {
			return nil, err
		}
	}
	//
	p.generateIntrinsics()
	// An empty graph still gets a well-formed layout: just the scratchpad.
	if len(p.levels) == 0 {
		p.constants.Offset = ScratchpadAddress + 1
		p.code.Offset = ScratchpadAddress + 1
	}
	// Map unused variables to the scratchpad.
	for _, name := range variableNames(lexicon) {
		if _, ok := p.inputs[name]; !ok {
			p.inputs[name] = ScratchpadAddress
			p.addComment(ScratchpadAddress, fmt.Sprintf("'%s'", name))
		}
	}
	//
	log.Debugf("generated %d instructions over %d levels (%d inputs, %d constants, %d outputs)",
		len(p.code.Instructions), len(p.levels), len(p.inputs), len(p.constants.Values), len(p.outputs))
	//
	return NewProgram(p.inputs, p.outputs, p.constants, p.code, p.comments), nil
}

// gather collects all unique terms reachable from the root, bucketed by
// depth.  The root sequence itself occupies no memory and is skipped; so are
// the constant terms of group operations, which are emitted as immediates.
func (p *generator) gather(term asg.Term) {
	if sequence, ok := term.(*asg.Sequence); ok {
		for _, child := range sequence.Terms() {
			p.gather(child)
		}
		//
		return
	}
	//
	if !p.unique[term] {
		p.unique[term] = true
		//
		level := term.Depth()
		for len(p.levels) < level+1 {
			p.levels = append(p.levels, nil)
		}
		//
		p.levels[level] = append(p.levels[level], term)
		//
		switch t := term.(type) {
		case *asg.Constant, *asg.Input:
			// terminals
		case *asg.Output:
			p.gather(t.Term())
		case *asg.UnaryFunction:
			p.gather(t.Argument())
		case *asg.Addition:
			p.gatherGroup(t)
		case *asg.Multiplication:
			p.gatherGroup(t)
		case *asg.Exponentiation:
			p.gather(t.Base())
			p.gather(t.Exponent())
		case *asg.Squaring:
			p.gather(t.Base())
		default:
			panic("unknown term kind")
		}
	}
}

func (p *generator) gatherGroup(op asg.GroupTerm) {
	// Note: The constant term is excluded on purpose.
	for _, term := range op.PositiveTerms() {
		p.gather(term)
	}
	for _, term := range op.NegativeTerms() {
		p.gather(term)
	}
}

func (p *generator) generateDataSection(terms []asg.Term) error {
	var constantCount, variableCount Address
	//
	for _, term := range terms {
		switch term.(type) {
		case *asg.Constant:
			constantCount++
		case *asg.Input:
			variableCount++
		default:
			return fmt.Errorf("Code generation failed -- code present in the data section")
		}
	}
	//
	var (
		variableSection = ScratchpadAddress + 1
		constantSection = variableSection + variableCount
		codeSection     = constantSection + constantCount
	)
	//
	for _, term := range terms {
		switch t := term.(type) {
		case *asg.Constant:
			address := constantSection + Address(len(p.constants.Values))
			p.constants.Values = append(p.constants.Values, t.Value())
			//
			if _, ok := p.comments[address]; !ok {
				p.addComment(address, "constant")
			}
			//
			if err := p.mapToMemory(t, address); err != nil {
				return err
			}
		case *asg.Input:
			address := variableSection + Address(len(p.inputs))
			if existing, ok := p.inputs[t.Name()]; ok {
				address = existing
			} else {
				p.inputs[t.Name()] = address
			}
			//
			if _, ok := p.comments[address]; !ok {
				p.addComment(address, "input")
			}
			//
			if err := p.mapToMemory(t, address); err != nil {
				return err
			}
		}
	}
	//
	p.constants.Offset = constantSection
	p.code.Offset = codeSection
	//
	return nil
}

func (p *generator) generateCodeSection(terms []asg.Term) error {
	for _, term := range terms {
		var err error
		//
		switch t := term.(type) {
		case *asg.Output:
			var address Address
			if address, err = p.address(t.Term()); err == nil {
				p.outputs[t.Name()] = address
				err = p.mapToMemory(t, address)
			}
		case *asg.UnaryFunction:
			var address Address
			if address, err = p.address(t.Argument()); err == nil {
				_, err = p.emitInstruction(Instruction{Opcode: CALL, Function: t.Function(), Operand: address}, t)
			}
		case *asg.Addition:
			err = p.emitGroupOperation(t, ADD_IMM, ADD, SUBTRACT_IMM, SUBTRACT)
		case *asg.Multiplication:
			err = p.emitGroupOperation(t, MULTIPLY_IMM, MULTIPLY, DIVIDE_IMM, DIVIDE)
		case *asg.Exponentiation:
			var base, exponent Address
			if base, err = p.address(t.Base()); err == nil {
				if exponent, err = p.address(t.Exponent()); err == nil {
					_, err = p.emitInstruction(Instruction{Opcode: POWER, Source: base, Operand: exponent}, t)
				}
			}
		case *asg.Squaring:
			var base Address
			if base, err = p.address(t.Base()); err == nil {
				_, err = p.emitInstruction(Instruction{Opcode: MULTIPLY, Source: base, Operand: base}, t)
			}
		default:
			err = fmt.Errorf("Code generation failed -- data present in the code section")
		}
		//
		if err != nil {
			return err
		}
	}
	//
	return nil
}

// emitGroupOperation emits the instruction sequence of a group operation: an
// _IMM instruction folds a non-identity constant into the first child, and
// every further child combines into the running accumulator.  The negative
// children switch to the inverse operation.  A single child with an identity
// constant leaves the operation pending until the final _IMM flush.
func (p *generator) emitGroupOperation(op asg.GroupTerm, initialPositive Opcode, sequentialPositive Opcode,
	initialNegative Opcode, sequentialNegative Opcode) error {
	var (
		last          = util.None[Address]()
		pending       = util.None[Opcode]()
		constant      = op.ConstantTerm().Value()
		needsConstant = constant != op.Identity()
	)
	//
	emitTerms := func(terms []asg.Term, initial Opcode, sequential Opcode) error {
		for _, term := range terms {
			address, err := p.address(term)
			if err != nil {
				return err
			}
			//
			switch {
			case last.HasValue():
				address, err = p.emitInstruction(Instruction{
					Opcode: sequential, Source: last.Unwrap(), Operand: address}, nil)
				last, pending = util.Some(address), util.None[Opcode]()
			case needsConstant || initial == initialNegative:
				address, err = p.emitInstruction(Instruction{
					Opcode: initial, Immediate: constant, Operand: address}, nil)
				last = util.Some(address)
			default:
				last, pending = util.Some(address), util.Some(initial)
			}
			//
			if err != nil {
				return err
			}
		}
		//
		return nil
	}
	//
	if err := emitTerms(op.PositiveTerms(), initialPositive, sequentialPositive); err != nil {
		return err
	}
	//
	if err := emitTerms(op.NegativeTerms(), initialNegative, sequentialNegative); err != nil {
		return err
	}
	//
	if last.IsEmpty() {
		panic("group operation without children survived rewriting")
	}
	// Fold the constant now if the operation is still pending.
	if pending.HasValue() {
		address, err := p.emitInstruction(Instruction{
			Opcode: pending.Unwrap(), Immediate: constant, Operand: last.Unwrap()}, nil)
		if err != nil {
			return err
		}
		//
		last = util.Some(address)
	}
	//
	return p.mapToMemory(op, last.Unwrap())
}

// emitInstruction appends an instruction, returning its address.  An already
// emitted instruction performing the same operation on the same operands is
// reused instead (instruction-level common-subexpression elimination).
func (p *generator) emitInstruction(insn Instruction, emitter asg.Term) (Address, error) {
	address := p.code.Offset + Address(len(p.code.Instructions))
	//
	for i := range p.code.Instructions {
		if p.code.Instructions[i].Matches(&insn) {
			address = p.code.Offset + Address(i)
			break
		}
	}
	//
	if address == p.code.Offset+Address(len(p.code.Instructions)) {
		p.code.Instructions = append(p.code.Instructions, insn)
	}
	//
	if emitter != nil {
		if err := p.mapToMemory(emitter, address); err != nil {
			return 0, err
		}
	}
	//
	return address, nil
}

// Replace some function calls with intrinsics.
//
// Most notably, if both "sin" and "cos" are called for the same value, they
// are replaced with SINCOS and NOP instructions, respectively.
func (p *generator) generateIntrinsics() {
	type candidates struct {
		sin int
		cos int
	}
	//
	pairs := make(map[Address]*candidates)
	fused := 0
	//
	for index := range p.code.Instructions {
		insn := &p.code.Instructions[index]
		if insn.Opcode != CALL {
			continue
		}
		//
		pair := pairs[insn.Operand]
		if pair == nil {
			pair = &candidates{-1, -1}
			pairs[insn.Operand] = pair
		}
		//
		switch funcPointer(insn.Function.Fn()) {
		case sinPointer:
			pair.sin = index
		case cosPointer:
			pair.cos = index
		}
	}
	//
	for _, pair := range pairs {
		if pair.sin >= 0 && pair.cos >= 0 {
			sin := &p.code.Instructions[pair.sin]
			cos := &p.code.Instructions[pair.cos]
			//
			sin.Opcode = SINCOS
			sin.Target = pair.cos - pair.sin
			sin.Function = nil
			cos.Opcode = NOP
			cos.Function = nil
			fused++
		}
	}
	//
	if fused > 0 {
		log.Debugf("fused %d sin/cos pairs into SINCOS intrinsics", fused)
	}
}

func (p *generator) mapToMemory(term asg.Term, address Address) error {
	if _, ok := p.mapping[term]; ok {
		return fmt.Errorf("Code generation failed -- ambiguous memory mapping")
	}
	//
	p.mapping[term] = address
	//
	if output, ok := term.(*asg.Output); ok {
		p.addComment(address, fmt.Sprintf("'%s'", output.Name()))
	} else if source := term.Source(); source != nil {
		if text := ast.OuterText(source); text != "" {
			p.addComment(address, fmt.Sprintf("'%s'", text))
		}
	}
	//
	return nil
}

func (p *generator) address(term asg.Term) (Address, error) {
	if address, ok := p.mapping[term]; ok {
		return address, nil
	}
	//
	return 0, fmt.Errorf("Code generation failed -- missing memory mapping")
}

func (p *generator) addComment(address Address, comment string) {
	if existing := p.comments[address]; existing != "" {
		comment = existing + ", " + comment
	}
	//
	p.comments[address] = comment
}

// kindOrder assigns every term kind its rank within a depth level.
func kindOrder(term asg.Term) int {
	switch term.(type) {
	case *asg.Constant:
		return 0
	case *asg.Input:
		return 1
	case *asg.Output:
		return 2
	case *asg.UnaryFunction:
		return 3
	case *asg.Addition:
		return 4
	case *asg.Multiplication:
		return 5
	case *asg.Exponentiation:
		return 6
	case *asg.Squaring:
		return 7
	case *asg.Sequence:
		return 8
	default:
		panic("unknown term kind")
	}
}

// variableNames lists the declared variables of a lexicon in a stable order.
func variableNames(lexicon *symbols.Lexicon) []string {
	var names []string
	//
	for name, symbol := range lexicon.Symbols() {
		if _, ok := symbol.(*symbols.Variable); ok {
			names = append(names, name)
		}
	}
	//
	sort.Strings(names)
	//
	return names
}
