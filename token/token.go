package token

import "strconv"

// Order is the binding strength of an emitted C expression. Lower values
// bind tighter. A child expression is parenthesised when its Order is
// greater than what the surrounding context requires.
type Order int

const (
	ATOMIC         Order = iota // literals, identifiers, calls, already parenthesised text
	UNARY_POSTFIX               // x++ a[i] f()
	UNARY_PREFIX                // -x !x ~x (type)x
	MULTIPLICATIVE              // * / %
	ADDITIVE                    // + -
	SHIFT                       // << >>
	RELATIONAL                  // < <= > >=
	EQUALITY                    // == !=
	BITWISE_AND                 // &
	BITWISE_XOR                 // ^
	BITWISE_OR                  // |
	LOGICAL_AND                 // &&
	LOGICAL_OR                  // ||
	CONDITIONAL                 // ?:
	ASSIGNMENT                  // = += -= ...
	NONE           Order = 99   // unknown binding, always wrapped
)

var orders = map[Order]string{
	ATOMIC:         "atomic",
	UNARY_POSTFIX:  "unary-postfix",
	UNARY_PREFIX:   "unary-prefix",
	MULTIPLICATIVE: "multiplicative",
	ADDITIVE:       "additive",
	SHIFT:          "shift",
	RELATIONAL:     "relational",
	EQUALITY:       "equality",
	BITWISE_AND:    "bitwise-and",
	BITWISE_XOR:    "bitwise-xor",
	BITWISE_OR:     "bitwise-or",
	LOGICAL_AND:    "logical-and",
	LOGICAL_OR:     "logical-or",
	CONDITIONAL:    "conditional",
	ASSIGNMENT:     "assignment",
	NONE:           "none",
}

func (o Order) String() string {
	if s, ok := orders[o]; ok {
		return s
	}
	return "order(" + strconv.Itoa(int(o)) + ")"
}

// LookupOrder maps a template's order name back to an Order.
func LookupOrder(name string) (Order, bool) {
	for o, s := range orders {
		if s == name {
			return o, true
		}
	}
	return NONE, false
}

// Needs reports whether an expression of order child must be wrapped in
// parentheses to be used where order required is expected.
func Needs(child, required Order) bool {
	return child > required
}

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	literal_beg
	IDENT  // digitalRead, x
	INT    // 42 0x1F
	FLOAT  // 3.14
	CHAR   // 'a'
	STRING // "abc"
	literal_end

	LPAREN // (
	RPAREN // )
	LBRACK // [
	RBRACK // ]
	LBRACE // {
	RBRACE // }
	COMMA  // ,
	PERIOD // .
	SEMI   // ;
	QUEST  // ?
	COLON  // :

	operator_beg
	ADD // +
	SUB // -
	MUL // *
	QUO // /
	REM // %

	AND // &
	OR  // |
	XOR // ^
	SHL // <<
	SHR // >>

	LAND // &&
	LOR  // ||
	NOT  // !
	NEG  // unary -
	BNOT // ~

	INC // ++
	DEC // --

	ASSIGN     // =
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	operator_end

	comparison_beg
	EQL // ==
	LSS // <
	GTR // >
	NEQ // !=
	LEQ // <=
	GEQ // >=
	comparison_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	CHAR:   "CHAR",
	STRING: "STRING",

	LPAREN: "(",
	RPAREN: ")",
	LBRACK: "[",
	RBRACK: "]",
	LBRACE: "{",
	RBRACE: "}",
	COMMA:  ",",
	PERIOD: ".",
	SEMI:   ";",
	QUEST:  "?",
	COLON:  ":",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",
	REM: "%",

	AND: "&",
	OR:  "|",
	XOR: "^",
	SHL: "<<",
	SHR: ">>",

	LAND: "&&",
	LOR:  "||",
	NOT:  "!",
	NEG:  "-",
	BNOT: "~",

	INC: "++",
	DEC: "--",

	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	SUB_ASSIGN: "-=",

	EQL: "==",
	LSS: "<",
	GTR: ">",
	NEQ: "!=",
	LEQ: "<=",
	GEQ: ">=",
}

var precedence = map[TokenType]Order{
	MUL: MULTIPLICATIVE, QUO: MULTIPLICATIVE, REM: MULTIPLICATIVE,
	ADD: ADDITIVE, SUB: ADDITIVE,
	SHL: SHIFT, SHR: SHIFT,
	LSS: RELATIONAL, GTR: RELATIONAL, LEQ: RELATIONAL, GEQ: RELATIONAL,
	EQL: EQUALITY, NEQ: EQUALITY,
	AND:  BITWISE_AND,
	XOR:  BITWISE_XOR,
	OR:   BITWISE_OR,
	LAND: LOGICAL_AND,
	LOR:  LOGICAL_OR,
	NOT:  UNARY_PREFIX, NEG: UNARY_PREFIX, BNOT: UNARY_PREFIX,
	INC: UNARY_POSTFIX, DEC: UNARY_POSTFIX,
	ASSIGN: ASSIGNMENT, ADD_ASSIGN: ASSIGNMENT, SUB_ASSIGN: ASSIGNMENT,
}

// dropdown values used by the editor's operator menus
var dropdowns = map[string]TokenType{
	"ADD":      ADD,
	"MINUS":    SUB,
	"MULTIPLY": MUL,
	"DIVIDE":   QUO,
	"MODULUS":  REM,
	"AND":      LAND,
	"OR":       LOR,
	"BITAND":   AND,
	"BITOR":    OR,
	"BITXOR":   XOR,
	"SHL":      SHL,
	"SHR":      SHR,
	"EQ":       EQL,
	"NEQ":      NEQ,
	"LT":       LSS,
	"LTE":      LEQ,
	"GT":       GTR,
	"GTE":      GEQ,
}

// Lookup maps an editor dropdown value ("ADD", "LTE", ...) or the operator
// text itself ("+", "<=") to a token type.
func Lookup(s string) TokenType {
	if tt, ok := dropdowns[s]; ok {
		return tt
	}
	if s == "" {
		return ILLEGAL
	}
	for i := operator_beg + 1; i < comparison_end; i++ {
		if tokens[i] == s && i != NEG {
			return i
		}
	}
	return ILLEGAL
}

// Order returns the precedence tier of an expression built from this operator.
func (tokenType TokenType) Order() Order {
	if o, ok := precedence[tokenType]; ok {
		return o
	}
	return NONE
}

// Token is one lexical item of generated C text.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // byte offset into the scanned text
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && literal_end > t.Type
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) IsComparison() bool {
	return comparison_beg < tokenType && comparison_end > tokenType
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
