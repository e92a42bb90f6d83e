package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thiremani/blockc/token"
)

type Test struct {
	expectedType    token.TokenType
	expectedLiteral string
}

func checkInput(t *testing.T, input string, tests []Test) {
	t.Helper()
	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `x = constrainInt(a + 5, 0, 7675);
if (x <= 10 && !done) { toggle(5); }
y -= 0x1F << 2;`

	tests := []Test{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "constrainInt"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.ADD, "+"},
		{token.INT, "5"},
		{token.COMMA, ","},
		{token.INT, "0"},
		{token.COMMA, ","},
		{token.INT, "7675"},
		{token.RPAREN, ")"},
		{token.SEMI, ";"},
		{token.IDENT, "if"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.LEQ, "<="},
		{token.INT, "10"},
		{token.LAND, "&&"},
		{token.NOT, "!"},
		{token.IDENT, "done"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "toggle"},
		{token.LPAREN, "("},
		{token.INT, "5"},
		{token.RPAREN, ")"},
		{token.SEMI, ";"},
		{token.RBRACE, "}"},
		{token.IDENT, "y"},
		{token.SUB_ASSIGN, "-="},
		{token.INT, "0x1F"},
		{token.SHL, "<<"},
		{token.INT, "2"},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}
	checkInput(t, input, tests)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"42", token.INT},
		{"0b1010", token.INT},
		{"10u", token.INT},
		{"3.14", token.FLOAT},
		{".5", token.FLOAT},
		{"1e3", token.FLOAT},
		{"2.5E-3", token.FLOAT},
		{"1f", token.FLOAT},
		{"0xEE", token.INT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := Tokens(tt.input)
			if assert.Len(t, toks, 1) {
				assert.Equal(t, tt.want, toks[0].Type)
				assert.Equal(t, tt.input, toks[0].Literal)
			}
		})
	}
}

func TestQuotedLiterals(t *testing.T) {
	checkInput(t, `"a \"b\" 3.5" 'x' '\n'`, []Test{
		{token.STRING, `"a \"b\" 3.5"`},
		{token.CHAR, `'x'`},
		{token.CHAR, `'\n'`},
		{token.EOF, ""},
	})
}

func TestUnterminatedString(t *testing.T) {
	toks := Tokens(`"abc`)
	if assert.Len(t, toks, 1) {
		assert.Equal(t, token.STRING, toks[0].Type)
		assert.Equal(t, `"abc`, toks[0].Literal)
	}
}

func TestCommentsAreDropped(t *testing.T) {
	toks := Tokens("0 /* ERROR: Missing 1.5 */ // trailing 2.0")
	if assert.Len(t, toks, 1) {
		assert.Equal(t, token.INT, toks[0].Type)
	}

	checkInput(t, "a // note\nb", []Test{
		{token.IDENT, "a"},
		{token.COMMENT, "// note"},
		{token.IDENT, "b"},
	})
}

func TestOffsets(t *testing.T) {
	toks := Tokens("é + ab")
	if assert.Len(t, toks, 3) {
		assert.Equal(t, token.ILLEGAL, toks[0].Type)
		assert.Equal(t, 3, toks[1].Offset)
		assert.Equal(t, 5, toks[2].Offset)
	}
}
