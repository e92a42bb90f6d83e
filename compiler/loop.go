package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
)

type controlsRepeat struct {
	Type string `field:"TYPE" default:"FOREVER"`
}

type controlsFor struct {
	Var string `field:"VAR" default:"i"`
}

type controlsBreak struct {
	Flow string `field:"FLOW" default:"BREAK"`
}

func registerLoops(r *Registry) {
	Statement(r, "controls_repeat", genRepeat)
	Statement(r, "controls_while", genWhile)
	Statement(r, "controls_for", genFor)
	Statement(r, "controls_break", genBreak)
}

// loopBody emits a loop's DO input inside a loop frame.
func (g *Generator) loopBody(b *block.Block) string {
	g.enterLoop("loop")
	defer g.leave()
	return bodyLines(g.StatementToCode(b, "DO"))
}

func genRepeat(g *Generator, b *block.Block, f *controlsRepeat) string {
	switch strings.ToUpper(f.Type) {
	case "TIMES":
		count := g.ValueToCode(b, "TIMES", token.RELATIONAL)
		n := g.FreshName("n")
		return "for (int " + n + " = 0; " + n + " < " + count + "; " + n + "++) {\n" + g.loopBody(b) + "}"
	case "WHILE":
		cond := g.ValueOr(b, "REPEAT_CONDITION", token.NONE, "0")
		return "while (" + cond + ") {\n" + g.loopBody(b) + "}"
	case "UNTIL":
		cond := g.ValueOr(b, "REPEAT_CONDITION", token.UNARY_PREFIX, "1")
		return "while (!" + cond + ") {\n" + g.loopBody(b) + "}"
	case "FOREVER":
		return "while (1) {\n" + g.loopBody(b) + "}"
	}
	return g.Warn(b, diag.BadField, "unknown repeat type %q", f.Type)
}

func genWhile(g *Generator, b *block.Block, _ *struct{}) string {
	cond := g.ValueOr(b, "CONDITION", token.NONE, "0")
	return "while (" + cond + ") {\n" + g.loopBody(b) + "}"
}

// genFor counts VAR from FROM to TO in steps of BY. The direction is
// decided at run time when the bounds are not literals.
func genFor(g *Generator, b *block.Block, f *controlsFor) string {
	name := varName(f.Var)
	fromFrag := g.ValueFragment(b, "FROM", "0")
	toFrag := g.ValueFragment(b, "TO", "10")
	byFrag := g.ValueFragment(b, "BY", "1")
	from, to, by := Wrap(fromFrag, token.ASSIGNMENT), Wrap(toFrag, token.RELATIONAL), Wrap(byFrag, token.ASSIGNMENT)
	rec, _ := g.Vars.Observe(name, from)
	g.declareVar(rec)

	lo, loOK := IntLiteral(from)
	hi, hiOK := IntLiteral(to)
	step, stepOK := IntLiteral(by)
	var head string
	switch {
	case loOK && hiOK && stepOK:
		if step < 0 {
			step = -step
		}
		if step == 0 {
			step = 1
		}
		if lo <= hi {
			head = "for (" + name + " = " + from + "; " + name + " <= " + to + "; " + name + " += " + strconv.Itoa(int(step)) + ")"
		} else {
			head = "for (" + name + " = " + from + "; " + name + " >= " + to + "; " + name + " -= " + strconv.Itoa(int(step)) + ")"
		}
	default:
		g.AddInclude("stdlib.h")
		up := Wrap(fromFrag, token.RELATIONAL) + " <= " + to
		stepAbs := "abs(" + Wrap(byFrag, token.NONE) + ")"
		head = "for (" + name + " = " + from + "; " + up + " ? " + name + " <= " + to + " : " + name + " >= " + to + "; " +
			name + " += " + up + " ? " + stepAbs + " : -" + stepAbs + ")"
	}
	return head + " {\n" + g.loopBody(b) + "}"
}

func genBreak(g *Generator, b *block.Block, f *controlsBreak) string {
	switch strings.ToUpper(f.Flow) {
	case "CONTINUE":
		if !g.inScope("loop") {
			return g.Warn(b, diag.Unsupported, "continue is only valid inside a loop")
		}
		return "continue;"
	default:
		if !g.inScope("loop") && !g.inScope("switch") {
			return g.Warn(b, diag.Unsupported, "break is only valid inside a loop")
		}
		return "break;"
	}
}
