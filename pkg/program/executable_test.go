package program_test

import (
	"math"
	"testing"

	"github.com/rgb-xyz/Sixpack/pkg/program"
)

// evaluateScalar runs a compiled program once with the given inputs.
func evaluateScalar(t *testing.T, p *program.Program, inputs map[string]float64) map[string]float64 {
	t.Helper()
	//
	executable := p.NewScalarExecutable()
	//
	for name, value := range inputs {
		executable.Memory()[addressOf(t, p, "input", name)] = value
	}
	//
	executable.Run()
	//
	outputs := make(map[string]float64)
	for name, address := range p.Outputs() {
		outputs[name] = executable.Memory()[address]
	}
	//
	return outputs
}

// Merge, squaring and the vector interpreter: (x+1)^2 over four lanes.
func TestExecute_Scenario06(t *testing.T) {
	p := compileScript(t, "input x\noutput y = (x+1)*(x+1)\n")
	//
	executable := p.NewVectorExecutable()
	executable.Memory()[addressOf(t, p, "input", "x")] = program.Vector{0, 1, 2, 3}
	executable.Run()
	//
	result := executable.Memory()[addressOf(t, p, "output", "y")]
	//
	if result != (program.Vector{1, 4, 9, 16}) {
		t.Errorf("expected [1 4 9 16], got %v", result)
	}
}

func TestExecute_ScalarBasics(t *testing.T) {
	script := "param k = 2\ninput x\ninput y\noutput sum = x+y-k\noutput quot = x/y\noutput pow = x^y\n"
	p := compileScript(t, script)
	//
	outputs := evaluateScalar(t, p, map[string]float64{"x": 9, "y": 2})
	//
	if outputs["sum"] != 9.0 {
		t.Errorf("sum: expected 9, got %v", outputs["sum"])
	}
	//
	if outputs["quot"] != 4.5 {
		t.Errorf("quot: expected 4.5, got %v", outputs["quot"])
	}
	//
	if outputs["pow"] != 81.0 {
		t.Errorf("pow: expected 81, got %v", outputs["pow"])
	}
}

func TestExecute_SincosValues(t *testing.T) {
	p := compileScript(t, "input x\noutput s = sin(x)\noutput c = cos(x)\n")
	//
	for _, x := range []float64{0, 0.5, 1.25, -2.5, math.Pi} {
		outputs := evaluateScalar(t, p, map[string]float64{"x": x})
		//
		if outputs["s"] != math.Sin(x) || outputs["c"] != math.Cos(x) {
			t.Errorf("x=%v: expected (%v, %v), got (%v, %v)",
				x, math.Sin(x), math.Cos(x), outputs["s"], outputs["c"])
		}
	}
}

// The fused program must write the same slots with the same values as the
// unfused calls would.
func TestExecute_SincosAgainstUnfused(t *testing.T) {
	// Distinct arguments prevent fusion here.
	unfused := compileScript(t, "input x\ninput u\noutput s = sin(x)\noutput c = cos(u)\n")
	fused := compileScript(t, "input x\noutput s = sin(x)\noutput c = cos(x)\n")
	//
	for _, x := range []float64{0.1, 1.0, 2.0} {
		a := evaluateScalar(t, unfused, map[string]float64{"x": x, "u": x})
		b := evaluateScalar(t, fused, map[string]float64{"x": x})
		//
		if a["s"] != b["s"] || a["c"] != b["c"] {
			t.Errorf("x=%v: fused (%v, %v) differs from unfused (%v, %v)", x, b["s"], b["c"], a["s"], a["c"])
		}
	}
}

// The vector interpreter must agree pointwise with the scalar one.
func TestExecute_VectorAgreesWithScalar(t *testing.T) {
	script := "param a = 0.75\ninput r\ninput phi\n" +
		"output f = a*r*sin(phi)^2 - (1-a)*cos(phi)\n" +
		"output g = r^2/(1 + sin(phi)*sin(phi))\n"
	p := compileScript(t, script)
	//
	var (
		rs   = [4]float64{0.5, 1.0, 2.0, 4.0}
		phis = [4]float64{0.0, 0.7, 1.4, 2.8}
	)
	//
	executable := p.NewVectorExecutable()
	executable.Memory()[addressOf(t, p, "input", "r")] = program.Vector(rs)
	executable.Memory()[addressOf(t, p, "input", "phi")] = program.Vector(phis)
	executable.Run()
	//
	for lane := 0; lane < program.VectorSize; lane++ {
		scalar := evaluateScalar(t, p, map[string]float64{"r": rs[lane], "phi": phis[lane]})
		//
		for name, address := range p.Outputs() {
			vectorised := executable.Memory()[address][lane]
			//
			if vectorised != scalar[name] {
				t.Errorf("lane %d, output %s: vector %v vs scalar %v", lane, name, vectorised, scalar[name])
			}
		}
	}
}

// Arithmetic failures propagate as IEEE-754 values rather than errors.
func TestExecute_NaNPropagation(t *testing.T) {
	p := compileScript(t, "input x\ninput y\noutput q = x/y + 1\noutput r = sqrt(0-x)\n")
	//
	outputs := evaluateScalar(t, p, map[string]float64{"x": 1, "y": 0})
	//
	if !math.IsInf(outputs["q"], 1) {
		t.Errorf("expected +Inf, got %v", outputs["q"])
	}
	//
	if !math.IsNaN(outputs["r"]) {
		t.Errorf("expected NaN, got %v", outputs["r"])
	}
}

func TestExecute_RepeatedRuns(t *testing.T) {
	p := compileScript(t, "input x\noutput y = x*x + 1\n")
	//
	executable := p.NewScalarExecutable()
	//
	var (
		x = addressOf(t, p, "input", "x")
		y = addressOf(t, p, "output", "y")
	)
	//
	for _, value := range []float64{0, 1, -3, 7.5} {
		executable.Memory()[x] = value
		executable.Run()
		//
		if expected := value*value + 1; executable.Memory()[y] != expected {
			t.Errorf("x=%v: expected %v, got %v", value, expected, executable.Memory()[y])
		}
	}
}

func TestVector_ElementwiseOperators(t *testing.T) {
	var (
		a = program.Vector{1, 2, 3, 4}
		b = program.Vector{4, 3, 2, 1}
	)
	//
	if a.Add(b) != (program.Vector{5, 5, 5, 5}) {
		t.Error("unexpected sum")
	}
	//
	if a.Sub(b) != (program.Vector{-3, -1, 1, 3}) {
		t.Error("unexpected difference")
	}
	//
	if a.Mul(b) != (program.Vector{4, 6, 6, 4}) {
		t.Error("unexpected product")
	}
	//
	if a.Div(b) != (program.Vector{0.25, 2.0 / 3.0, 1.5, 4}) {
		t.Error("unexpected quotient")
	}
	//
	if program.Splat(7) != (program.Vector{7, 7, 7, 7}) {
		t.Error("unexpected splat")
	}
}

// Lane offsets compute finite differences in a single run.
func TestExecute_FiniteDifferenceLanes(t *testing.T) {
	const step = 1e-6
	//
	p := compileScript(t, "input x\noutput y = x^3\n")
	//
	executable := p.NewVectorExecutable()
	executable.Memory()[addressOf(t, p, "input", "x")] = program.Vector{2, 2 + step, 2, 2}
	executable.Run()
	//
	result := executable.Memory()[addressOf(t, p, "output", "y")]
	derivative := (result[1] - result[0]) / step
	//
	if math.Abs(derivative-12.0) > 1e-4 {
		t.Errorf("expected d(x^3)/dx at 2 to be ~12, got %v", derivative)
	}
}
