package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

type mathNumber struct {
	Num string `field:"NUM" default:"0"`
}

type binaryOp struct {
	Op string `field:"OP"`
}

type logicBoolean struct {
	Bool bool `field:"BOOL"`
}

func registerOperators(r *Registry) {
	Value(r, "math_number", genMathNumber)
	Value(r, "math_arithmetic", genArithmetic)
	Value(r, "math_compare", genCompare)
	Value(r, "logic_compare", genCompare)
	Value(r, "logic_operation", genLogicOperation)
	Value(r, "logic_negate", genLogicNegate)
	Value(r, "logic_boolean", genLogicBoolean)
	r.Helper("pow", types.Float)
}

// genMathNumber validates the literal so a typo in the editor cannot
// inject arbitrary text into the program.
func genMathNumber(g *Generator, b *block.Block, f *mathNumber) (string, token.Order) {
	text := strings.TrimSpace(f.Num)
	digits := strings.TrimPrefix(strings.ToLower(text), "-")
	based := strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0b")
	isFloat := !based && strings.ContainsAny(digits, ".e")
	if n, err := block.ParseInt(text); err == nil && !isFloat {
		if n < 0 {
			return strconv.FormatInt(n, 10), token.UNARY_PREFIX
		}
		return text, token.ATOMIC
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		lit := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsAny(lit, ".eE") {
			lit += ".0"
		}
		if v < 0 {
			return lit, token.UNARY_PREFIX
		}
		return lit, token.ATOMIC
	}
	fr := g.FailValue(b, "0", diag.BadField, "%q is not a number", f.Num)
	return fr.Code, fr.Order
}

// genArithmetic covers + - * / % and the bitwise operators. POWER becomes
// a pow() call.
func genArithmetic(g *Generator, b *block.Block, f *binaryOp) (string, token.Order) {
	if strings.ToUpper(f.Op) == "POWER" {
		g.AddInclude("math.h")
		a := g.ValueToCode(b, "A", token.NONE)
		c := g.ValueToCode(b, "B", token.NONE)
		return "pow(" + a + ", " + c + ")", token.UNARY_POSTFIX
	}
	op := token.Lookup(strings.ToUpper(f.Op))
	if op == token.ILLEGAL || op.IsComparison() || op.Order() > token.BITWISE_OR {
		fr := g.FailValue(b, "0", diag.BadField, "unknown arithmetic operator %q", f.Op)
		return fr.Code, fr.Order
	}
	return binary(g, b, op), op.Order()
}

func genCompare(g *Generator, b *block.Block, f *binaryOp) (string, token.Order) {
	op := token.Lookup(strings.ToUpper(f.Op))
	if !op.IsComparison() {
		fr := g.FailValue(b, "0", diag.BadField, "unknown comparison %q", f.Op)
		return fr.Code, fr.Order
	}
	return binary(g, b, op), op.Order()
}

func genLogicOperation(g *Generator, b *block.Block, f *binaryOp) (string, token.Order) {
	op := token.Lookup(strings.ToUpper(f.Op))
	if op != token.LAND && op != token.LOR {
		fr := g.FailValue(b, "0", diag.BadField, "unknown logic operator %q", f.Op)
		return fr.Code, fr.Order
	}
	return binary(g, b, op), op.Order()
}

// binary renders A op B. The right operand of a non-commutative operator
// needs one tier tighter so that a - (b - c) keeps its parentheses.
func binary(g *Generator, b *block.Block, op token.TokenType) string {
	order := op.Order()
	right := order
	switch op {
	case token.SUB, token.QUO, token.REM, token.SHL, token.SHR:
		right = order - 1
	}
	if op.IsComparison() {
		// chained comparisons always read better parenthesised
		right = order - 1
	}
	a := g.ValueToCode(b, "A", order)
	c := g.ValueToCode(b, "B", right)
	return a + " " + op.String() + " " + c
}

func genLogicNegate(g *Generator, b *block.Block, _ *struct{}) (string, token.Order) {
	return "!" + g.ValueOr(b, "BOOL", token.UNARY_PREFIX, "1"), token.UNARY_PREFIX
}

func genLogicBoolean(g *Generator, b *block.Block, f *logicBoolean) (string, token.Order) {
	g.AddInclude("stdbool.h")
	if f.Bool {
		return "true", token.ATOMIC
	}
	return "false", token.ATOMIC
}
