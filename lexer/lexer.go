package lexer

import "github.com/thiremani/blockc/token"

// Lexer scans C expression text produced by block generators. It is not a
// full C lexer: it knows enough to tell literals, identifiers and
// punctuation apart so inference never mistakes a '.' inside a string for
// a decimal point.
type Lexer struct {
	input        []rune
	offsets      []int // byte offset of each rune
	position     int   // current position in input (points to current rune)
	readPosition int   // current reading position in input (after current rune)
	curr         rune  // current rune under examination
}

func New(input string) *Lexer {
	l := &Lexer{}
	for off, r := range input {
		l.input = append(l.input, r)
		l.offsets = append(l.offsets, off)
	}
	l.offsets = append(l.offsets, len(input))
	l.readRune()
	return l
}

// Tokens scans the whole input, dropping comments.
func Tokens(input string) []token.Token {
	l := New(input)
	toks := []token.Token{}
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		if tok.Type == token.COMMENT {
			continue
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	start := l.position
	off := l.offsets[start]

	if l.curr == 0 {
		return token.Token{Type: token.EOF, Offset: off}
	}

	switch {
	case IsLetter(l.curr):
		lit := l.readIdentifier()
		return token.Token{Type: token.IDENT, Literal: lit, Offset: off}
	case isDigit(l.curr), l.curr == '.' && isDigit(l.peekRune()):
		typ, lit := l.readNumber()
		return token.Token{Type: typ, Literal: lit, Offset: off}
	case l.curr == '"':
		return token.Token{Type: token.STRING, Literal: l.readQuoted('"'), Offset: off}
	case l.curr == '\'':
		return token.Token{Type: token.CHAR, Literal: l.readQuoted('\''), Offset: off}
	case l.curr == '/' && l.peekRune() == '/':
		for l.curr != 0 && l.curr != '\n' {
			l.readRune()
		}
		return token.Token{Type: token.COMMENT, Literal: string(l.input[start:l.position]), Offset: off}
	case l.curr == '/' && l.peekRune() == '*':
		l.readRune()
		l.readRune()
		for l.curr != 0 && !(l.curr == '*' && l.peekRune() == '/') {
			l.readRune()
		}
		l.readRune()
		l.readRune()
		return token.Token{Type: token.COMMENT, Literal: string(l.input[start:min(l.position, len(l.input))]), Offset: off}
	}

	if l.peekRune() != 0 {
		pair := string([]rune{l.curr, l.peekRune()})
		if tt := twoRune(pair); tt != token.ILLEGAL {
			l.readRune()
			l.readRune()
			return token.Token{Type: tt, Literal: pair, Offset: off}
		}
	}

	tt := oneRune(l.curr)
	lit := string(l.curr)
	l.readRune()
	return token.Token{Type: tt, Literal: lit, Offset: off}
}

func twoRune(pair string) token.TokenType {
	switch pair {
	case "==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "++", "--", "+=", "-=":
		return token.Lookup(pair)
	}
	return token.ILLEGAL
}

func oneRune(r rune) token.TokenType {
	switch r {
	case '(':
		return token.LPAREN
	case ')':
		return token.RPAREN
	case '[':
		return token.LBRACK
	case ']':
		return token.RBRACK
	case '{':
		return token.LBRACE
	case '}':
		return token.RBRACE
	case ',':
		return token.COMMA
	case '.':
		return token.PERIOD
	case ';':
		return token.SEMI
	case '?':
		return token.QUEST
	case ':':
		return token.COLON
	case '!':
		return token.NOT
	case '~':
		return token.BNOT
	}
	return token.Lookup(string(r))
}

func (l *Lexer) skipWhitespace() {
	for l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r' {
		l.readRune()
	}
}

func (l *Lexer) readRune() {
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = min(l.readPosition, len(l.input))
	l.readPosition++
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for IsLetterOrDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readNumber reads integer and floating literals including hex, binary,
// exponents and C suffixes (f, u, l).
func (l *Lexer) readNumber() (token.TokenType, string) {
	position := l.position
	typ := token.INT
	if l.curr == '0' && (l.peekRune() == 'x' || l.peekRune() == 'X' || l.peekRune() == 'b' || l.peekRune() == 'B') {
		l.readRune()
		l.readRune()
		for isHexDigit(l.curr) {
			l.readRune()
		}
	} else {
		for isDigit(l.curr) {
			l.readRune()
		}
		if l.curr == '.' {
			typ = token.FLOAT
			l.readRune()
			for isDigit(l.curr) {
				l.readRune()
			}
		}
		if l.curr == 'e' || l.curr == 'E' {
			typ = token.FLOAT
			l.readRune()
			if l.curr == '+' || l.curr == '-' {
				l.readRune()
			}
			for isDigit(l.curr) {
				l.readRune()
			}
		}
	}
	for l.curr == 'f' || l.curr == 'F' || l.curr == 'u' || l.curr == 'U' || l.curr == 'l' || l.curr == 'L' {
		if l.curr == 'f' || l.curr == 'F' {
			typ = token.FLOAT
		}
		l.readRune()
	}
	return typ, string(l.input[position:l.position])
}

// readQuoted reads a string or char literal including its quotes.
// An unterminated literal runs to the end of input.
func (l *Lexer) readQuoted(quote rune) string {
	position := l.position
	l.readRune() // opening quote
	for l.curr != 0 && l.curr != quote {
		if l.curr == '\\' {
			l.readRune()
		}
		l.readRune()
	}
	if l.curr == quote {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func IsLetterOrDigit(ch rune) bool {
	return IsLetter(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
