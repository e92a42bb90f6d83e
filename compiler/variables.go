package compiler

import (
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

type varGet struct {
	Var string `field:"VAR"`
}

type varSet struct {
	Var string `field:"VAR"`
}

type varDeclare struct {
	Var    string `field:"VAR"`
	Type   string `field:"TYPE" default:"int"`
	Length int    `field:"LENGTH"`
}

type crement struct {
	Var string `field:"VAR"`
	Op  string `field:"OP" default:"INC"`
}

type textString struct {
	Text string `field:"TEXT"`
}

func varName(name string) string {
	return types.SafeName(name)
}

var declTypes = map[string]types.Kind{
	"int":          types.Int,
	"float":        types.Float,
	"char":         types.Char,
	"char pointer": types.CharPtr,
	"char_ptr":     types.CharPtr,
	"boolean":      types.Bool,
	"bool":         types.Bool,
}

func registerVariables(r *Registry) {
	Value(r, "variables_get", genVarGet)
	Statement(r, "variables_set", genVarSet)
	Root(r, "variables_declare", genVarDeclare)
	Statement(r, "math_crement", genCrement)
	Value(r, "text_string", genTextString)
}

func genVarGet(g *Generator, b *block.Block, f *varGet) (string, token.Order) {
	if f.Var == "" {
		return "0", token.ATOMIC
	}
	name := varName(f.Var)
	if _, ok := g.Vars.Get(name); !ok {
		g.declareVar(g.Vars.Use(name))
	}
	return name, token.ATOMIC
}

// genVarSet emits an assignment and feeds its right-hand side to type
// inference. Char buffers are filled with strcpy.
func genVarSet(g *Generator, b *block.Block, f *varSet) string {
	if f.Var == "" {
		return g.Warn(b, diag.BadField, "set block has no variable selected")
	}
	name := varName(f.Var)
	rhs := g.ValueToCode(b, "VALUE", token.ASSIGNMENT)
	rec, inf := g.Vars.Observe(name, rhs)
	if !inf.Matched {
		g.Report(b, diag.AmbiguousType, diag.Info, "type of %s not evident from %q, assuming int", name, rhs)
	}
	g.declareVar(rec)
	if rec.Type == types.Char {
		g.AddInclude("string.h")
		return "strcpy(" + name + ", " + rhs + ");"
	}
	return name + " = " + rhs + ";"
}

func genVarDeclare(g *Generator, b *block.Block, f *varDeclare) {
	if f.Var == "" {
		g.Report(b, diag.BadField, diag.Warning, "declaration has no variable name")
		return
	}
	kind, ok := declTypes[strings.ToLower(f.Type)]
	if !ok {
		g.Report(b, diag.BadField, diag.Warning, "unknown type %q for %s, using int", f.Type, f.Var)
		kind = types.Int
	}
	rec := g.Vars.Declare(varName(f.Var), kind, max(f.Length, 0))
	g.declareVar(rec)
}

func genCrement(g *Generator, b *block.Block, f *crement) string {
	if f.Var == "" {
		return g.Warn(b, diag.BadField, "increment block has no variable selected")
	}
	name := varName(f.Var)
	if _, ok := g.Vars.Get(name); !ok {
		g.declareVar(g.Vars.Use(name))
	}
	if strings.ToUpper(f.Op) == "DEC" {
		return name + "--;"
	}
	return name + "++;"
}

func genTextString(g *Generator, b *block.Block, f *textString) (string, token.Order) {
	return quoteC(f.Text), token.ATOMIC
}
