package sixpack_test

import (
	"math"
	"testing"

	"github.com/rgb-xyz/Sixpack/pkg/program"
	"github.com/rgb-xyz/Sixpack/pkg/sixpack"
)

// kerrScript describes the metric tensor of a rotating black hole; it
// exercises parameters, symbolic expressions, bracketed subexpressions,
// trigonometric calls and shared subexpressions.
const kerrScript = `### Kerr Metric ###
#
# Inputs
input  t
input  r
input  phi
input  theta

# Parameters
param  M     = 1                       # mass
param  J     = 0.8                     # angular momentum
       a     = J/M                     # spin parameter
       r_s   = 2*M                     # Schwarzschild radius
       SIGMA = r^2 + a^2*cos(theta)^2

# Outputs
output g_00 = -(1-r_s*r/SIGMA)
output g_03 = -[r_s*r*a*sin(theta)^2]/SIGMA
output g_11 = SIGMA/(r^2 - 2*M*r + a^2)
output g_22 = SIGMA
output g_30 = -a*[2*M*r]/[a^2*cos(theta)^2 + r^2]*sin(theta)^2
output g_33 = (r^2 + a^2 + [r_s*r*a^2]/SIGMA*sin(theta)^2)*sin(theta)^2
`

func newKerrCompiler(t *testing.T) *sixpack.Compiler {
	t.Helper()
	//
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.AddFunction("sin", math.Sin); err != nil {
		t.Fatal(err)
	} else if err := compiler.AddFunction("cos", math.Cos); err != nil {
		t.Fatal(err)
	} else if err := compiler.AddSourceScript(kerrScript); err != nil {
		t.Fatal(err)
	}
	//
	return compiler
}

func TestCompiler_KerrMetric(t *testing.T) {
	compiled, err := newKerrCompiler(t).Compile()
	if err != nil {
		t.Fatal(err)
	}
	// Written differently, g_30 must still coincide with g_03.
	g03, err := compiled.OutputAddress("g_03")
	if err != nil {
		t.Fatal(err)
	}
	//
	g30, err := compiled.OutputAddress("g_30")
	if err != nil {
		t.Fatal(err)
	}
	//
	if g03 != g30 {
		t.Errorf("expected g_03 and g_30 to share their slot, got %d and %d", g03, g30)
	}
	// Both sin(theta) and cos(theta) occur, hence a fused intrinsic.
	sincos := false
	for _, insn := range compiled.Code().Instructions {
		sincos = sincos || insn.Opcode == program.SINCOS
	}
	//
	if !sincos {
		t.Error("expected a SINCOS instruction")
	}
	// The unused time coordinate falls onto the scratchpad.
	if address, err := compiled.InputAddress("t"); err != nil || address != program.ScratchpadAddress {
		t.Errorf("expected input 't' on the scratchpad, got %d (%v)", address, err)
	}
	// Evaluate one point and compare against the direct formulas.
	var (
		r, phi, theta = 3.0, 1.2, 0.9
		m, j          = 1.0, 0.8
		a             = j / m
		sigma         = r*r + a*a*math.Cos(theta)*math.Cos(theta)
	)
	//
	executable := compiled.NewScalarExecutable()
	//
	for name, value := range map[string]float64{"r": r, "phi": phi, "theta": theta} {
		address, err := compiled.InputAddress(name)
		if err != nil {
			t.Fatal(err)
		}
		//
		executable.Memory()[address] = value
	}
	//
	executable.Run()
	//
	expected := map[string]float64{
		"g_00": -(1 - 2*m*r/sigma),
		"g_22": sigma,
	}
	//
	for name, value := range expected {
		address, err := compiled.OutputAddress(name)
		if err != nil {
			t.Fatal(err)
		}
		//
		if actual := executable.Memory()[address]; math.Abs(actual-value) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", name, value, actual)
		}
	}
}

func TestCompiler_Visibility(t *testing.T) {
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	// Symbolic expressions are visible but not emitted.
	if _, err := compiler.AddExpression("helper", "x*2", sixpack.Symbolic); err != nil {
		t.Fatal(err)
	}
	// Public expressions are visible and emitted.
	if _, err := compiler.AddExpression("a", "helper+1", sixpack.Public); err != nil {
		t.Fatal(err)
	}
	// Private expressions are emitted but not visible.
	if _, err := compiler.AddExpression("b", "helper-1", sixpack.Private); err != nil {
		t.Fatal(err)
	}
	// A reference to the private name fails lazily, at compile time.
	if _, err := compiler.AddExpression("c", "b+1", sixpack.Public); err != nil {
		t.Fatal(err)
	}
	//
	_, err := compiler.Compile()
	if err == nil {
		t.Fatal("expected compilation to fail")
	}
	//
	if message := err.Error(); message != "Output 'c': Unknown symbol 'b'" {
		t.Errorf("unexpected error '%s'", message)
	}
	//
	names := make([]string, 0)
	for _, output := range compiler.Outputs() {
		names = append(names, output.Name())
	}
	//
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("unexpected outputs %v", names)
	}
}

func TestCompiler_DuplicateOutput(t *testing.T) {
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	//
	if _, err := compiler.AddExpression("y", "x+1", sixpack.Private); err != nil {
		t.Fatal(err)
	}
	//
	_, err := compiler.AddExpression("y", "x+2", sixpack.Private)
	if err == nil || err.Error() != "Duplicate output symbol 'y'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCompiler_ParametersFrozenAtCompileTime(t *testing.T) {
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.AddParameter("k", 3); err != nil {
		t.Fatal(err)
	} else if err := compiler.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	//
	if _, err := compiler.AddExpression("y", "x+k", sixpack.Public); err != nil {
		t.Fatal(err)
	}
	//
	evaluate := func() float64 {
		compiled, err := compiler.Compile()
		if err != nil {
			t.Fatal(err)
		}
		//
		executable := compiled.NewScalarExecutable()
		//
		x, err := compiled.InputAddress("x")
		if err != nil {
			t.Fatal(err)
		}
		//
		executable.Memory()[x] = 10
		executable.Run()
		//
		y, err := compiled.OutputAddress("y")
		if err != nil {
			t.Fatal(err)
		}
		//
		return executable.Memory()[y]
	}
	//
	if value := evaluate(); value != 13.0 {
		t.Errorf("expected 13, got %v", value)
	}
	// Changing the parameter only affects programs compiled afterwards.
	if err := compiler.SetParameter("k", 5); err != nil {
		t.Fatal(err)
	}
	//
	if value := evaluate(); value != 15.0 {
		t.Errorf("expected 15, got %v", value)
	}
}

func TestCompiler_SetParameterUnknown(t *testing.T) {
	compiler := sixpack.NewCompiler()
	//
	if err := compiler.SetParameter("nope", 1); err == nil || err.Error() != "Unknown parameter 'nope'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCompiler_FailedCompileLeavesStateIntact(t *testing.T) {
	compiler := newKerrCompiler(t)
	// Sabotage with an output referencing an unknown name.
	if _, err := compiler.AddExpression("bad", "nope+1", sixpack.Private); err != nil {
		t.Fatal(err)
	}
	//
	if _, err := compiler.Compile(); err == nil {
		t.Fatal("expected compilation to fail")
	}
	// The accumulated declarations are intact; in particular the inputs are
	// still known.
	inputs := compiler.Inputs()
	if len(inputs) != 4 {
		t.Errorf("expected 4 inputs, got %v", inputs)
	}
}
