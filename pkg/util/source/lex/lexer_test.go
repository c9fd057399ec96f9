package lex

import (
	"testing"

	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// Tags used by the test rules.
const (
	END_OF uint = iota
	WSPACE
	LBRACE
	RBRACE
	NUMBER
	WORD
	OTHER
)

var testRules = []LexRule[rune]{
	Rule(Many(Or(Unit(' '), Unit('\t'))), WSPACE),
	Rule(Unit('('), LBRACE),
	Rule(Unit(')'), RBRACE),
	Rule(Many(Within('0', '9')), NUMBER),
	Rule(And(Within('a', 'z'), Many(Within('a', 'z'))), WORD),
	Rule(Eof[rune](), END_OF),
	Rule(Any[rune](), OTHER),
}

func TestLexer_00(t *testing.T) {
	checkLexer(t, "",
		Token{END_OF, source.NewSpan(0, 0)})
}

func TestLexer_01(t *testing.T) {
	checkLexer(t, "(",
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{END_OF, source.NewSpan(1, 1)})
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "()",
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{RBRACE, source.NewSpan(1, 2)},
		Token{END_OF, source.NewSpan(2, 2)})
}

func TestLexer_03(t *testing.T) {
	checkLexer(t, "( )",
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{WSPACE, source.NewSpan(1, 2)},
		Token{RBRACE, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)})
}

func TestLexer_04(t *testing.T) {
	checkLexer(t, "12 abc",
		Token{NUMBER, source.NewSpan(0, 2)},
		Token{WSPACE, source.NewSpan(2, 3)},
		Token{WORD, source.NewSpan(3, 6)},
		Token{END_OF, source.NewSpan(6, 6)})
}

func TestLexer_05(t *testing.T) {
	// Unmatched characters fall through to the catch-all rule.
	checkLexer(t, "a#1",
		Token{WORD, source.NewSpan(0, 1)},
		Token{OTHER, source.NewSpan(1, 2)},
		Token{NUMBER, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)})
}

func TestLexer_06(t *testing.T) {
	// Without a catch-all rule, scanning stops at the first unmatched
	// character.
	rules := []LexRule[rune]{
		Rule(Many(Within('0', '9')), NUMBER),
		Rule(Eof[rune](), END_OF),
	}
	//
	tokens := Scan([]rune("12x3"), rules...)
	//
	if len(tokens) != 1 || tokens[0] != (Token{NUMBER, source.NewSpan(0, 2)}) {
		t.Errorf("unexpected tokens %v", tokens)
	}
}

func TestScanner_Sequence(t *testing.T) {
	scanner := Sequence(Unit('a'), Many(Within('0', '9')), Unit('b'))
	//
	if n := scanner([]rune("a12b")); n != 4 {
		t.Errorf("expected match of length 4, got %d", n)
	}
	//
	if n := scanner([]rune("ab")); n != 0 {
		t.Errorf("expected no match, got %d", n)
	}
}

func TestScanner_Any(t *testing.T) {
	if n := Any[rune]()([]rune{}); n != 0 {
		t.Errorf("Any matched the empty input")
	}
	//
	if n := Any[rune]()([]rune("x")); n != 1 {
		t.Errorf("Any failed to match a single item")
	}
}

func checkLexer(t *testing.T, input string, expected ...Token) {
	tokens := Scan([]rune(input), testRules...)
	//
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	//
	for i, token := range tokens {
		if token != expected[i] {
			t.Errorf("token %d: expected %v, got %v", i, expected[i], token)
		}
	}
}
