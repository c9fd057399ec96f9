package sixpack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgb-xyz/Sixpack/pkg/util/source"
)

// token is a compact (kind, text) pair for expectation tables.
type token struct {
	kind uint
	text string
}

func tokenise(input string) []token {
	var (
		parser = newParser(source.NewSourceFile("", input))
		tokens []token
	)
	//
	for _, t := range parser.tokens {
		tokens = append(tokens, token{t.Kind, parser.text(t)})
	}
	//
	return tokens
}

func TestTokens_Empty(t *testing.T) {
	assert.Equal(t, []token{{END_OF, ""}}, tokenise(""))
	assert.Equal(t, []token{{END_OF, ""}}, tokenise("         \t   \r\n"))
}

func TestTokens_Numbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []token
	}{
		{"   1", []token{{NUMBER, "1"}, {END_OF, ""}}},
		{"1   ", []token{{NUMBER, "1"}, {END_OF, ""}}},
		{"1\t2", []token{{NUMBER, "1"}, {NUMBER, "2"}, {END_OF, ""}}},
		{"1.0", []token{{NUMBER, "1.0"}, {END_OF, ""}}},
		{"+1.0", []token{{PLUS, "+"}, {NUMBER, "1.0"}, {END_OF, ""}}},
		{"-1.0", []token{{MINUS, "-"}, {NUMBER, "1.0"}, {END_OF, ""}}},
		{"1.0.0", []token{{NUMBER, "1.0"}, {UNKNOWN, "."}, {NUMBER, "0"}, {END_OF, ""}}},
		{"1.0E1", []token{{NUMBER, "1.0E1"}, {END_OF, ""}}},
		{"1.0E+1", []token{{NUMBER, "1.0E+1"}, {END_OF, ""}}},
		{"1.0e-1", []token{{NUMBER, "1.0e-1"}, {END_OF, ""}}},
		{"1.0f-1", []token{{NUMBER, "1.0"}, {IDENTIFIER, "f"}, {MINUS, "-"}, {NUMBER, "1"}, {END_OF, ""}}},
		{"1.0e-1.0", []token{{NUMBER, "1.0e-1"}, {UNKNOWN, "."}, {NUMBER, "0"}, {END_OF, ""}}},
		{"1.0e(1+3)", []token{
			{NUMBER, "1.0"}, {IDENTIFIER, "e"}, {LPAREN, "("},
			{NUMBER, "1"}, {PLUS, "+"}, {NUMBER, "3"}, {RPAREN, ")"}, {END_OF, ""}}},
	}
	//
	for _, test := range tests {
		assert.Equal(t, test.expected, tokenise(test.input), "input: %s", test.input)
	}
}

func TestTokens_Identifiers(t *testing.T) {
	assert.Equal(t, []token{{IDENTIFIER, "abc123"}, {END_OF, ""}}, tokenise("abc123"))
	assert.Equal(t, []token{{NUMBER, "123"}, {IDENTIFIER, "abc"}, {END_OF, ""}}, tokenise("123abc"))
	assert.Equal(t, []token{{NUMBER, "123"}, {IDENTIFIER, "_abc"}, {END_OF, ""}}, tokenise("123_abc"))
	assert.Equal(t, []token{{IDENTIFIER, "_123abc"}, {END_OF, ""}}, tokenise("_123abc"))
}

func TestTokens_Operators(t *testing.T) {
	assert.Equal(t, []token{
		{RBRACKET, "]"}, {NUMBER, "8"}, {SLASH, "/"}, {PLUS, "+"}, {IDENTIFIER, "def"},
		{RPAREN, ")"}, {LBRACKET, "["}, {MINUS, "-"}, {NUMBER, "1.3"}, {CARET, "^"},
		{ASTERISK, "*"}, {NUMBER, "43"}, {END_OF, ""},
	}, tokenise("]8/+def)[-1.3^*43"))
}

func TestTokens_Positions(t *testing.T) {
	parser := newParser(source.NewSourceFile("", "ab + 1"))
	//
	assert.Equal(t, 0, parser.tokens[0].Span.Start())
	assert.Equal(t, 3, parser.tokens[1].Span.Start())
	assert.Equal(t, 5, parser.tokens[2].Span.Start())
}
