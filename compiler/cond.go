package compiler

import (
	"strconv"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
)

// controlsIf declares its else-if count and else branch explicitly instead
// of growing inputs at run time. Inputs are IF0/DO0 ... IFn/DOn and ELSE.
type controlsIf struct {
	ElseIf int  `mutation:"elseif"`
	Else   bool `mutation:"else"`
}

// controlsSwitch has CASE0..CASEn value inputs with DO0..DOn bodies and an
// optional DEFAULT body.
type controlsSwitch struct {
	Cases   int  `mutation:"cases" default:"1"`
	Default bool `mutation:"default"`
}

func registerCond(r *Registry) {
	Statement(r, "controls_if", genIf)
	Statement(r, "controls_switch", genSwitch)
	Value(r, "logic_ternary", genTernary)
}

func genIf(g *Generator, b *block.Block, f *controlsIf) string {
	code := ""
	for n := 0; n <= max(f.ElseIf, 0); n++ {
		cond := g.ValueOr(b, "IF"+strconv.Itoa(n), token.NONE, "0")
		if n == 0 {
			code += "if (" + cond + ") {\n"
		} else {
			code += " else if (" + cond + ") {\n"
		}
		code += bodyLines(g.StatementToCode(b, "DO"+strconv.Itoa(n))) + "}"
	}
	if f.Else {
		code += " else {\n" + bodyLines(g.StatementToCode(b, "ELSE")) + "}"
	}
	return code
}

func genSwitch(g *Generator, b *block.Block, f *controlsSwitch) string {
	subject := g.ValueToCode(b, "SWITCH_VAL", token.NONE)
	code := "switch (" + subject + ") {\n"
	g.enterLoop("switch")
	seen := map[string]struct{}{}
	for n := 0; n < max(f.Cases, 0); n++ {
		label := g.ValueToCode(b, "CASE"+strconv.Itoa(n), token.CONDITIONAL)
		if _, dup := seen[label]; dup {
			code += INDENT + g.Warn(b, diag.BadField, "case %s appears more than once and is skipped", label) + "\n"
			continue
		}
		seen[label] = struct{}{}
		code += INDENT + "case " + label + ":\n"
		code += bodyLines(Indent(g.StatementToCode(b, "DO"+strconv.Itoa(n)), INDENT))
		code += INDENT + INDENT + "break;\n"
	}
	if f.Default {
		code += INDENT + "default:\n"
		code += bodyLines(Indent(g.StatementToCode(b, "DEFAULT"), INDENT))
		code += INDENT + INDENT + "break;\n"
	}
	g.leave()
	return code + "}"
}

func genTernary(g *Generator, b *block.Block, _ *struct{}) (string, token.Order) {
	cond := g.ValueOr(b, "IF", token.LOGICAL_OR, "0")
	then := g.ValueToCode(b, "THEN", token.CONDITIONAL)
	other := g.ValueToCode(b, "ELSE", token.CONDITIONAL)
	return cond + " ? " + then + " : " + other, token.CONDITIONAL
}

// bodyLines terminates a non-empty indented body with a newline.
func bodyLines(body string) string {
	if body == "" {
		return ""
	}
	return body + "\n"
}
