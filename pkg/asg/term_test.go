package asg

import (
	"math"
	"testing"

	"github.com/rgb-xyz/Sixpack/pkg/symbols"
)

func TestTerm_ConstantKey(t *testing.T) {
	if key := NewConstant(2.5).Key(); key != "2.5" {
		t.Errorf("unexpected key '%s'", key)
	}
	// Negative zero is canonicalised to positive zero.
	if NewConstant(math.Copysign(0, -1)).Key() != NewConstant(0).Key() {
		t.Error("-0 and +0 must have the same key")
	}
}

func TestTerm_Depth(t *testing.T) {
	var (
		x   = NewInput("x")
		c   = NewConstant(1)
		sum = NewAddition(nil)
	)
	//
	sum.AddPositiveTerm(x)
	sum.AddNegativeTerm(c)
	//
	if x.Depth() != 0 || c.Depth() != 0 {
		t.Error("terminals must have depth 0")
	}
	//
	if sum.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", sum.Depth())
	}
	//
	output := NewOutput("y", sum)
	if output.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", output.Depth())
	}
	//
	power := NewExponentiation(sum, NewSquaring(x))
	if power.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", power.Depth())
	}
}

func TestTerm_KeyCommutative(t *testing.T) {
	var (
		ab = NewAddition(nil)
		ba = NewAddition(nil)
	)
	//
	ab.AddPositiveTerm(NewInput("a"))
	ab.AddPositiveTerm(NewInput("b"))
	ba.AddPositiveTerm(NewInput("b"))
	ba.AddPositiveTerm(NewInput("a"))
	//
	if ab.Key() != ba.Key() {
		t.Errorf("a+b and b+a must share a key: '%s' vs '%s'", ab.Key(), ba.Key())
	}
	//
	var (
		amb = NewAddition(nil)
		bma = NewAddition(nil)
	)
	//
	amb.AddPositiveTerm(NewInput("a"))
	amb.AddNegativeTerm(NewInput("b"))
	bma.AddPositiveTerm(NewInput("b"))
	bma.AddNegativeTerm(NewInput("a"))
	//
	if amb.Key() == bma.Key() {
		t.Error("a-b and b-a must not share a key")
	}
}

func TestTerm_KeyDistinguishesOperations(t *testing.T) {
	var (
		sum     = NewAddition(nil)
		product = NewMultiplication(nil)
	)
	//
	sum.AddPositiveTerm(NewInput("a"))
	sum.AddPositiveTerm(NewInput("b"))
	product.AddPositiveTerm(NewInput("a"))
	product.AddPositiveTerm(NewInput("b"))
	//
	if sum.Key() == product.Key() {
		t.Error("a+b and a*b must not share a key")
	}
}

func TestTerm_FreezeAfterObserve(t *testing.T) {
	sum := NewAddition(nil)
	sum.AddPositiveTerm(NewInput("a"))
	// Observing the key freezes the term.
	_ = sum.Key()
	//
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when mutating a frozen term")
		}
	}()
	//
	sum.AddPositiveTerm(NewInput("b"))
}

func TestTerm_Fold(t *testing.T) {
	var (
		x   = NewInput("x")
		sin = symbols.NewFunction("sin", math.Sin)
	)
	// A group operation without children folds to its constant.
	sum := NewAddition(NewConstant(4))
	if value := sum.Fold(); value.IsEmpty() || value.Unwrap() != 4.0 {
		t.Errorf("expected 4, got %v", value)
	}
	// A multiplication with a zero constant folds to zero regardless of its
	// children.
	product := NewMultiplication(NewConstant(0))
	product.AddPositiveTerm(x)
	//
	if value := product.Fold(); value.IsEmpty() || value.Unwrap() != 0.0 {
		t.Errorf("expected 0, got %v", value)
	}
	// An addition with children does not fold.
	withChild := NewAddition(NewConstant(0))
	withChild.AddPositiveTerm(x)
	//
	if withChild.Fold().HasValue() {
		t.Error("expected no folding")
	}
	// Unary function of a constant folds through the host function.
	call := NewUnaryFunction(sin, NewConstant(2))
	if value := call.Fold(); value.IsEmpty() || value.Unwrap() != math.Sin(2) {
		t.Errorf("expected sin(2), got %v", value)
	}
	// A constant zero base folds to one.
	power := NewExponentiation(NewConstant(0), x)
	if value := power.Fold(); value.IsEmpty() || value.Unwrap() != 1.0 {
		t.Errorf("expected 1, got %v", value)
	}
	// Both operands constant.
	power = NewExponentiation(NewConstant(2), NewConstant(10))
	if value := power.Fold(); value.IsEmpty() || value.Unwrap() != 1024.0 {
		t.Errorf("expected 1024, got %v", value)
	}
	// Squaring of a constant.
	squared := NewSquaring(NewConstant(-3))
	if value := squared.Fold(); value.IsEmpty() || value.Unwrap() != 9.0 {
		t.Errorf("expected 9, got %v", value)
	}
	// Inputs, outputs and sequences never fold.
	if x.Fold().HasValue() || NewOutput("y", x).Fold().HasValue() || NewSequence().Fold().HasValue() {
		t.Error("expected no folding")
	}
}

func TestTerm_UnaryFunctionKeyByPointer(t *testing.T) {
	var (
		x  = NewInput("x")
		f1 = symbols.NewFunction("sin", math.Sin)
		f2 = symbols.NewFunction("sine", math.Sin)
		f3 = symbols.NewFunction("cos", math.Cos)
	)
	// Two symbols wrapping the same host function are the same function.
	if NewUnaryFunction(f1, x).Key() != NewUnaryFunction(f2, x).Key() {
		t.Error("expected equal keys for the same host function")
	}
	//
	if NewUnaryFunction(f1, x).Key() == NewUnaryFunction(f3, x).Key() {
		t.Error("expected different keys for different host functions")
	}
}
