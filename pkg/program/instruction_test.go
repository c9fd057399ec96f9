package program

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgb-xyz/Sixpack/pkg/symbols"
)

func TestInstruction_Matches(t *testing.T) {
	var (
		sin  = symbols.NewFunction("sin", math.Sin)
		sine = symbols.NewFunction("sine", math.Sin)
		cos  = symbols.NewFunction("cos", math.Cos)
	)
	//
	tests := []struct {
		name     string
		left     Instruction
		right    Instruction
		expected bool
	}{
		{
			"NOPs are never merged",
			Instruction{Opcode: NOP},
			Instruction{Opcode: NOP},
			false,
		},
		{
			"equal register forms",
			Instruction{Opcode: ADD, Source: 3, Operand: 4},
			Instruction{Opcode: ADD, Source: 3, Operand: 4},
			true,
		},
		{
			"register forms with different sources",
			Instruction{Opcode: ADD, Source: 3, Operand: 4},
			Instruction{Opcode: ADD, Source: 5, Operand: 4},
			false,
		},
		{
			"different opcodes",
			Instruction{Opcode: ADD, Source: 3, Operand: 4},
			Instruction{Opcode: MULTIPLY, Source: 3, Operand: 4},
			false,
		},
		{
			"equal immediate forms",
			Instruction{Opcode: MULTIPLY_IMM, Immediate: 2.5, Operand: 4},
			Instruction{Opcode: MULTIPLY_IMM, Immediate: 2.5, Operand: 4},
			true,
		},
		{
			"immediate forms with different immediates",
			Instruction{Opcode: MULTIPLY_IMM, Immediate: 2.5, Operand: 4},
			Instruction{Opcode: MULTIPLY_IMM, Immediate: 2.0, Operand: 4},
			false,
		},
		{
			"calls compare the host function",
			Instruction{Opcode: CALL, Function: sin, Operand: 4},
			Instruction{Opcode: CALL, Function: sine, Operand: 4},
			true,
		},
		{
			"calls to different functions",
			Instruction{Opcode: CALL, Function: sin, Operand: 4},
			Instruction{Opcode: CALL, Function: cos, Operand: 4},
			false,
		},
		{
			"sincos compares the displacement",
			Instruction{Opcode: SINCOS, Target: 2, Operand: 4},
			Instruction{Opcode: SINCOS, Target: 3, Operand: 4},
			false,
		},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.left.Matches(&test.right))
		})
	}
}

func TestInstruction_String(t *testing.T) {
	sin := symbols.NewFunction("sin", math.Sin)
	//
	assert.Equal(t, "ADD          [3], [4]", (&Instruction{Opcode: ADD, Source: 3, Operand: 4}).String())
	assert.Equal(t, "ADD_IMM      2.5, [4]", (&Instruction{Opcode: ADD_IMM, Immediate: 2.5, Operand: 4}).String())
	assert.Equal(t, "CALL         sin, [4]", (&Instruction{Opcode: CALL, Function: sin, Operand: 4}).String())
	assert.Equal(t, "SINCOS       +2, [4]", (&Instruction{Opcode: SINCOS, Target: 2, Operand: 4}).String())
	assert.Equal(t, "NOP", (&Instruction{Opcode: NOP}).String())
}

func TestProgram_LayoutAssertions(t *testing.T) {
	// An output on the scratchpad violates the layout.
	assert.Panics(t, func() {
		NewProgram(
			map[string]Address{},
			map[string]Address{"y": ScratchpadAddress},
			Constants{},
			Code{Offset: 1},
			map[Address]string{},
		)
	})
	// Constants overlapping the code segment violate the layout.
	assert.Panics(t, func() {
		NewProgram(
			map[string]Address{},
			map[string]Address{},
			Constants{Offset: 1, Values: []float64{1, 2}},
			Code{Offset: 2},
			map[Address]string{},
		)
	})
	// An input inside the constants segment violates the layout.
	assert.Panics(t, func() {
		NewProgram(
			map[string]Address{"x": 1},
			map[string]Address{},
			Constants{Offset: 1, Values: []float64{1}},
			Code{Offset: 2},
			map[Address]string{},
		)
	})
}
